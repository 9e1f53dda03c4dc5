// Package utils provides small helpers shared by the mergehosts packages:
// path resolution relative to the configuration directory and closing of
// files with a logged warning.
package utils
