package main

import (
	"github.com/arcadia-dao/timelock-admin/cmd"
)

func main() {
	cmd.Execute()
}
