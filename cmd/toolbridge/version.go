package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-toolbridge/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VersionCommand) Run(ctx *Globals) error {
	data, err := version.JSON(ctx.execName)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
