package main

import (
	"math/big"
	"net/http"

	"cloud.google.com/go/storage"
	"github.com/ethereum/go-ethereum/ethclient"
	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/spf13/viper"
	"google.golang.org/api/option"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/database/mongoclient"
	"github.com/x-xyz/collectibles/base/database/redisclient"
	"github.com/x-xyz/collectibles/base/ethereum"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/base/metrics"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/annotation"
	"github.com/x-xyz/collectibles/domain/keys"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/service/cache"
	"github.com/x-xyz/collectibles/service/cache/provider"
	"github.com/x-xyz/collectibles/service/cache/provider/compound"
	"github.com/x-xyz/collectibles/service/notify"
	"github.com/x-xyz/collectibles/service/pinata"
	"github.com/x-xyz/collectibles/service/query"
	"github.com/x-xyz/collectibles/service/redis"
	annotation_repository "github.com/x-xyz/collectibles/stores/annotation/repository"
	annotation_usecase "github.com/x-xyz/collectibles/stores/annotation/usecase"
	content_repository "github.com/x-xyz/collectibles/stores/content/repository"
	content_usecase "github.com/x-xyz/collectibles/stores/content/usecase"
	ledger_repository "github.com/x-xyz/collectibles/stores/ledger/repository"
	session_repository "github.com/x-xyz/collectibles/stores/session/repository"
)

const defaultGateway = "https://gateway.pinata.cloud/ipfs/"

// mustRedis returns nil when redis.uri is not set
func mustRedis(c ctx.Ctx) redis.Service {
	uri := viper.GetString("redis.uri")
	if uri == "" {
		return nil
	}
	c.Info("init redis")
	name := viper.GetString("redis.name")
	pool := redisclient.MustConnectRedis(uri, viper.GetString("redis.password"), redisclient.RedisParam{
		PoolMultiplier: viper.GetFloat64("redis.poolMultiplier"),
		Retries:        viper.GetInt("redis.retries"),
	})
	return redis.New(name, metrics.New(name), &redis.Pools{Src: pool})
}

// mustMongo returns nil when mongo.uri is not set
func mustMongo(c ctx.Ctx) query.Mongo {
	uri := viper.GetString("mongo.uri")
	if uri == "" {
		return nil
	}
	c.Info("init mongo")
	client := mongoclient.MustConnectMongoClient(
		uri,
		viper.GetString("mongo.authDBName"),
		viper.GetString("mongo.dbName"),
		viper.GetBool("mongo.enableSSL"),
		uint64(viper.GetInt("mongo.maxPoolSize")),
	)
	return query.New(client)
}

func pinataService() pinata.Service {
	return pinata.New(pinata.Config{
		ApiKey:    viper.GetString("pinata.apiKey"),
		ApiSecret: viper.GetString("pinata.apiSecret"),
	})
}

func mustContentStore(c ctx.Ctx, layers []provider.Provider) domain.ContentStore {
	httpClient := &http.Client{}
	timeout := viper.GetDuration("content.timeout")
	gateway := viper.GetString("ipfs.gateway")
	if gateway == "" {
		gateway = defaultGateway
	}

	var (
		ipfsReader domain.ContentReaderRepository
		writer     domain.ContentWriterRepository
	)
	if nodeUrl := viper.GetString("ipfs.nodeUrl"); nodeUrl != "" {
		shell := ipfsapi.NewShell(nodeUrl)
		ipfsReader = content_repository.NewIpfsNodeApiReaderRepo(shell, timeout)
		if viper.GetString("content.backend") == "ipfs" {
			writer = content_repository.NewIpfsNodeApiWriterRepo(shell)
		}
	} else {
		ipfsReader = content_repository.NewIpfsGatewayReaderRepo(httpClient, gateway, timeout)
	}

	switch backend := viper.GetString("content.backend"); backend {
	case "ipfs":
		if writer == nil {
			c.Panic("content.backend ipfs needs ipfs.nodeUrl")
		}
	case "gcs":
		client, err := storage.NewClient(c, option.WithCredentialsFile(viper.GetString("gcs.credentialsFile")))
		if err != nil {
			c.WithField("err", err).Panic("storage.NewClient failed")
		}
		writer, err = content_repository.NewCloudStorageWriterRepo(&content_repository.CloudStorageWriterRepoCfg{
			Timeout:    timeout,
			Client:     client,
			BucketName: viper.GetString("gcs.bucket"),
			Url:        viper.GetString("gcs.url"),
			Folder:     viper.GetString("gcs.folder"),
		})
		if err != nil {
			c.WithField("err", err).Panic("NewCloudStorageWriterRepo failed")
		}
	case "pinata", "":
		writer = content_repository.NewPinataWriterRepo(pinataService(), gateway)
	default:
		c.WithField("backend", backend).Panic("unknown content.backend")
	}

	return content_usecase.NewContentUseCase(&content_usecase.ContentUseCaseCfg{
		HttpReader:    content_repository.NewHttpReaderRepo(httpClient, timeout, nil),
		IpfsReader:    ipfsReader,
		DataUriReader: content_repository.NewDataUriReaderRepo(),
		Writer:        writer,
		Cache: cache.New(cache.ServiceConfig{
			Pfx:     keys.PfxMetadata,
			Cache:   compound.NewCompound(layers),
			Metrics: metrics.New("metadataCache"),
		}),
	})
}

func mustLedger(c ctx.Ctx) listing.LedgerRepo {
	switch backend := viper.GetString("ledger.backend"); backend {
	case "memory", "":
		c.Info("init memory ledger")
		accounts := []domain.Address{}
		for _, a := range viper.GetStringSlice("ledger.accounts") {
			accounts = append(accounts, domain.Address(a).ToLower())
		}
		return ledger_repository.NewMemoryLedger(ledger_repository.MemoryLedgerCfg{
			Operator:   domain.Address(viper.GetString("ledger.marketplace")).ToLower(),
			Nft:        domain.Address(viper.GetString("ledger.nft")).ToLower(),
			Accounts:   accounts,
			FeePercent: viper.GetInt64("ledger.feePercent"),
		})
	case "ethereum":
		c.Info("init ethereum ledger")
		client, err := ethclient.DialContext(c, viper.GetString("ledger.rpcUrl"))
		if err != nil {
			c.WithField("err", err).Panic("ethclient.Dial failed")
		}
		var pks []string
		if pk := viper.GetString("ledger.privateKey"); pk != "" {
			pks = append(pks, pk)
		}
		pks = append(pks, viper.GetStringSlice("ledger.privateKeys")...)

		cfg := ledger_repository.EthereumLedgerCfg{
			Backend:     ethereum.NewThrottledClient(client, viper.GetInt("ledger.throttle")),
			ChainId:     big.NewInt(viper.GetInt64("ledger.chainId")),
			Marketplace: domain.Address(viper.GetString("ledger.marketplace")),
			Nft:         domain.Address(viper.GetString("ledger.nft")),
			FromBlock:   viper.GetUint64("ledger.fromBlock"),
		}
		for _, pk := range pks {
			key, addr, err := ethereum.ParsePrivateKey(pk)
			if err != nil {
				c.WithField("err", err).Panic("invalid ledger private key")
			}
			c.WithField("account", addr).Info("ledger signer loaded")
			cfg.Keys = append(cfg.Keys, key)
		}
		ledger, err := ledger_repository.NewEthereumLedger(cfg)
		if err != nil {
			c.WithField("err", err).Panic("NewEthereumLedger failed")
		}
		return ledger
	default:
		c.WithField("backend", backend).Panic("unknown ledger.backend")
	}
	return nil
}

func mustAnnotation(c ctx.Ctx, redisCache redis.Service, mongo query.Mongo) annotation.Usecase {
	var repo annotation.Repo
	switch backend := viper.GetString("annotation.backend"); backend {
	case "pinata", "":
		repo = annotation_repository.NewPinataRepo(pinataService())
	case "redis":
		if redisCache == nil {
			c.Panic("annotation.backend redis needs redis.uri")
		}
		repo = annotation_repository.NewRedisRepo(redisCache)
	case "mongo":
		if mongo == nil {
			c.Panic("annotation.backend mongo needs mongo.uri")
		}
		repo = annotation_repository.NewMongoRepo(mongo)
	default:
		c.WithField("backend", backend).Panic("unknown annotation.backend")
	}

	sizeMB := viper.GetInt("session.sizeMB")
	if sizeMB <= 0 {
		sizeMB = 1
	}
	session := session_repository.NewFileStore(viper.GetString("session.path"), sizeMB)
	if err := session.Load(c); err != nil {
		c.WithField("err", err).Warn("session.Load failed, starting empty")
	}
	return annotation_usecase.NewLikeUseCase(&annotation_usecase.LikeUseCaseCfg{
		Repo:    repo,
		Session: session,
	})
}

func mustNotifier(c ctx.Ctx) listing.OrphanNotifier {
	botKey := viper.GetString("discord.botKey")
	if botKey == "" {
		return notify.NewLogNotifier()
	}
	n, err := notify.NewDiscordNotifier(notify.DiscordCfg{
		BotKey:    botKey,
		ChannelId: viper.GetString("discord.channelId"),
	})
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("discord notifier unavailable, logging orphans only")
		return notify.NewLogNotifier()
	}
	return n
}
