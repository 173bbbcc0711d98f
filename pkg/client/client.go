package client

import (
	"context"
	"time"

	"salas/pkg/logger"
)

// Client holds the external service connections a store backend may need.
// Only the connection for the configured backend is established.
type Client struct {
	Mongo  *MongoClient
	Sheets *SheetsClient
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetMongo(log *logger.Logger, mongoURI string, connTimeout time.Duration) {
	c.Mongo = NewMongoClient(log, mongoURI, connTimeout)
}

func (c *Client) SetSheets(log *logger.Logger, credentialsJSON, credentialsFile string) {
	c.Sheets = NewSheetsClient(log, credentialsJSON, credentialsFile)
}

func (c *Client) GracefulShutdown(log *logger.Logger) {
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.Mongo.Client.Disconnect(ctx); err != nil {
			log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}
}
