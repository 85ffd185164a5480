package main

import "github.com/Alijeyrad/hms_backend/cmd"

func main() {
	cmd.Execute()
}
