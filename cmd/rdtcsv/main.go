/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/rdtcsv/cmd/rdtcsv/cmd"

func main() {
	cmd.Execute()
}
