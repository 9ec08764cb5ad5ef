package main

import "github.com/arshanh/nutriplan-cli/cmd/nutriplan"

func main() {
	nutriplan.Execute()
}
