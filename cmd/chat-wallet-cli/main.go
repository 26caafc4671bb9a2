package main

import "github.com/tipdao/chat-wallet/cmd/chat-wallet-cli/cmd"

func main() {
	cmd.Execute()
}
