//go:build !lamp_xiao

package config

// Selected is the configuration the firmware boots with.
var Selected = Default()
