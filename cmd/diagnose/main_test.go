package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlags_Registered(t *testing.T) {
	for _, name := range []string{"file", "show-cycle-graphs", "full", "config", "log-level"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "flag %q not registered", name)
	}
}

func TestRunDiagnose_RequiresAtLeastOneFile(t *testing.T) {
	files = nil
	err := runDiagnose(rootCmd, nil)
	assert.Error(t, err)
}
