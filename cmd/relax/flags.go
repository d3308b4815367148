package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// The apply helpers copy a config value into target unless the flag was set
// on the command line.

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// optionalFloat resolves a flag that may be absent altogether: the flag
// value if set, else the config value, else nil.
func optionalFloat(cmd *cobra.Command, name string, flagValue float64, cfgValue *float64) *float64 {
	if cmd.Flags().Changed(name) {
		v := flagValue
		return &v
	}
	if cfgValue != nil {
		v := *cfgValue
		return &v
	}
	return nil
}

func validateFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}
