// Package app wires the call widget's dependencies from configuration.
//
// It picks the topic source, registers wallet connectors, dials the chain
// node used for balances and builds the call-request submitter, exposing
// them via Wire for the CLI commands.
package app
