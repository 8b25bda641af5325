package mongoclient

import (
	"context"
	"crypto/tls"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/x-xyz/collectibles/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second
	mgConnTimeout   = 10 * time.Second
)

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// DB is the database the client was connected for
func (c *Client) DB() *mongo.Database {
	return c.Client.Database(c.DbName)
}

// MustConnectMongoClient returns MongoDB connection client if connected successfully, or it will trigger panic
func MustConnectMongoClient(uri, authDBName, dbName string, ssl bool, maxPoolSize uint64) *Client {
	cli, err := ConnectMongoClient(uri, authDBName, dbName, ssl, maxPoolSize)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": uri, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// ConnectMongoClient returns mongo driver client
func ConnectMongoClient(uri, authDBName, dbName string, ssl bool, maxPoolSize uint64) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mgConnTimeout)
	defer cancel()

	connSetting, err := connstring.Parse(uri)
	if err != nil {
		log.Log().WithFields(log.Fields{"dbName": dbName, "err": err}).Error("fail to parse connstring")
		return nil, err
	}

	clientOpts := options.Client().
		ApplyURI(uri).
		SetSocketTimeout(mgSocketTimeout).
		SetRetryWrites(true).
		SetWriteConcern(writeconcern.New(writeconcern.WMajority()))

	// If AuthSource is not set in connstring, set it to authDBName
	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              authDBName,
		})
	}
	if maxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(maxPoolSize)
	}
	if ssl {
		clientOpts.SetTLSConfig(&tls.Config{})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoHosts": connSetting.Hosts, "dbName": dbName, "err": err}).Error("fail to connect mongo db")
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Log().WithFields(log.Fields{"mongoHosts": connSetting.Hosts, "dbName": dbName, "err": err}).Error("fail to ping mongo db")
		return nil, err
	}

	log.Log().WithFields(log.Fields{"mongoHosts": connSetting.Hosts, "db": dbName}).Info("mongo connected")
	return &Client{
		Client: client,
		DbName: dbName,
	}, nil
}
