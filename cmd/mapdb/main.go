/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/gisdevelope/mapdb/cmd/mapdb/cmd"
)

func main() {
	cmd.Execute()
}
