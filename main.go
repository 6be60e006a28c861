package main

import "github.com/EO-DataHub/eodhp-user-services/cmd"

func main() {
	cmd.Execute()
}
