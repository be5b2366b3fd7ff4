package main

import "github.com/pfrederiksen/quiz-results/internal/cli"

func main() {
	cli.Execute()
}
