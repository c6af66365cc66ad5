package main

import "github.com/StinkyLord/lockfile-loader/cmd"

func main() {
	cmd.Execute()
}
