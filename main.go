/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ewhitby/pipekit/cmd"

func main() {
	cmd.Execute()
}
