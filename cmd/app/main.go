package main

import "koala-user-service/internal/cli"

func main() {
	cli.Execute()
}
