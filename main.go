package main

import "github.com/yeimages/resfinder/cmd"

func main() {
	cmd.Execute()
}
