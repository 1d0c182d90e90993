//go:build wazero_testing

package buildoptions

// IstTest true if built with the wazero_testing tag, enabling the
// test-time-only assertions gated behind it elsewhere in the tree.
const IstTest = true
