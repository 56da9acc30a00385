// This program performs administrative tasks for the ledger.
package main

import "github.com/ardanlabs/blockledger/app/tooling/admin/cmd"

func main() {
	cmd.Execute()
}
