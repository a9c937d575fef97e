package main

import (
	"context"

	"github.com/scott-cotton/cli"
	_ "github.com/vecdoc/svgopt/passes"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
