package main

import "github.com/folio-blog/folio/internal/folio/cli"

func main() {
	cli.Execute()
}
