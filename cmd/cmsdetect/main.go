package main

import "github.com/getstack/cmsdetect/pkg/runner"

func main() {
	runner.Execute()
}
