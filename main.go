package main

import (
	"github.com/pyneda/wsdlgen/cmd"
)

func main() {
	cmd.Execute()
}
