package main

import (
	"dhapi/cmd/dhapi/commands"
	"dhapi/lib/util/serviceutil"
)

func main() {
	err := commands.ExecuteContext(serviceutil.SignalContext())
	if err != nil {
		serviceutil.Fatal("dhapi failed", err)
	}
}
