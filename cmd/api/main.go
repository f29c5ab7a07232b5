package main

// @title LINE Webhook Gateway
// @version 1.0
// @description Receives signed LINE webhooks and a Zendesk log sink.

// @host localhost:8000
// @BasePath /
// @schemes http
import (
	_ "line-webhook-gateway/docs"
	protocol "line-webhook-gateway/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Fatalln(err)
	}
}
