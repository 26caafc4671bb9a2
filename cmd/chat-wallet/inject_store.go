package main

import (
	"github.com/google/wire"
	"github.com/tipdao/chat-wallet/store/proposal"
	"github.com/tipdao/chat-wallet/store/wallet"
)

var storeSet = wire.NewSet(
	wallet.New,
	proposal.New,
)
