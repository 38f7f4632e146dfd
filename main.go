//go:build rp2040

package main

import (
	"context"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"lampcode-go/services/config"
	"lampcode-go/services/hal/rp2hal"
	"lampcode-go/services/lamp"
	"lampcode-go/x/logx"
)

func main() {
	// Logs go to UART0 rather than USB CDC so the core is free to sleep.
	uart := uartx.UART0
	if err := uart.Configure(uartx.UARTConfig{
		BaudRate: 115_200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	}); err == nil {
		logx.Output = uart
	}

	cfg := config.Selected
	l, err := lamp.New(rp2hal.New(cfg.TickPeriod), cfg)
	if err != nil {
		logx.Error("config rejected", "err", err.Error())
		select {}
	}
	if err := l.Boot(); err != nil {
		logx.Error("boot failed", "err", err.Error())
		select {}
	}
	_ = l.Run(context.Background())
}
