package main

import (
	"github.com/garence/whackamole/internal/cli"
)

func main() {
	cli.Execute()
}
