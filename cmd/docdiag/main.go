package main

import (
	"github.com/docdiag/docdiag/ddcli"
	"github.com/docdiag/docdiag/lib/xmain"
)

func main() {
	xmain.Main(ddcli.Run)
}
