// Package main is the entry point for the hoopmetrics CLI tool, which analyses
// basketball games for runs, streaks, comebacks, clutch scoring and milestones.
package main

import "github.com/pable/go-hoops-metrics/cmd"

func main() {
	cmd.Execute()
}
