package usecase

import (
	"encoding/json"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	bCtx "github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain"
	"github.com/x-xyz/collectibles/domain/keys"
	"github.com/x-xyz/collectibles/service/cache"
	"golang.org/x/xerrors"
)

const metadataName = "metadata.json"

type ContentUseCaseCfg struct {
	HttpReader    domain.ContentReaderRepository
	IpfsReader    domain.ContentReaderRepository
	DataUriReader domain.ContentReaderRepository
	Writer        domain.ContentWriterRepository
	// Cache keeps resolved metadata, keyed by the locator hash. Locators are
	// content addressed so entries never go stale.
	Cache cache.Service
}

type contentUseCase struct {
	httpReader    domain.ContentReaderRepository
	ipfsReader    domain.ContentReaderRepository
	dataUriReader domain.ContentReaderRepository
	writer        domain.ContentWriterRepository
	cache         cache.Service
}

func NewContentUseCase(cfg *ContentUseCaseCfg) domain.ContentStore {
	return &contentUseCase{
		httpReader:    cfg.HttpReader,
		ipfsReader:    cfg.IpfsReader,
		dataUriReader: cfg.DataUriReader,
		writer:        cfg.Writer,
		cache:         cfg.Cache,
	}
}

func (u *contentUseCase) PutAsset(c bCtx.Ctx, asset domain.Asset) (string, error) {
	if len(asset.Data) == 0 {
		return "", domain.NewError(domain.ErrUpload, xerrors.New("empty asset"))
	}

	name, contentType := asset.Name, asset.ContentType
	mtype := mimetype.Detect(asset.Data)
	if contentType == "" {
		contentType = mtype.String()
	}
	if path.Ext(name) == "" {
		name += mtype.Extension()
	}

	locator, err := u.writer.Store(c, name, asset.Data, contentType)
	if err != nil {
		c.WithFields(log.Fields{
			"name": name,
			"err":  err,
		}).Error("writer.Store failed")
		return "", domain.NewError(domain.ErrUpload, err)
	}
	return locator, nil
}

func (u *contentUseCase) PutMetadata(c bCtx.Ctx, md domain.Metadata) (string, error) {
	data, err := json.Marshal(md)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return "", domain.NewError(domain.ErrUpload, err)
	}

	locator, err := u.writer.Store(c, metadataName, data, "application/json")
	if err != nil {
		c.WithField("err", err).Error("writer.Store failed")
		return "", domain.NewError(domain.ErrUpload, err)
	}
	return locator, nil
}

func (u *contentUseCase) Resolve(c bCtx.Ctx, locator string) (*domain.Metadata, error) {
	if u.cache == nil {
		return u.resolve(c, locator)
	}

	md := &domain.Metadata{}
	getter := func() (interface{}, error) {
		return u.resolve(c, locator)
	}
	if err := u.cache.GetByFunc(c, keys.SHA256(locator), md, getter); err != nil {
		return nil, err
	}
	return md, nil
}

func (u *contentUseCase) resolve(c bCtx.Ctx, locator string) (*domain.Metadata, error) {
	data, err := u.getJson(c, locator)
	if err != nil {
		return nil, domain.NewError(domain.ErrResolve, err)
	}

	md := &domain.Metadata{}
	if err := json.Unmarshal(data, md); err != nil {
		c.WithFields(log.Fields{
			"locator": locator,
			"err":     err,
		}).Error("json.Unmarshal failed")
		return nil, domain.NewError(domain.ErrResolve, domain.ErrInvalidJsonFormat)
	}
	if md.Name == "" {
		return nil, domain.NewError(domain.ErrResolve, xerrors.Errorf("metadata without name at %s", locator))
	}
	return md, nil
}

func (u *contentUseCase) getJson(c bCtx.Ctx, rawUrl string) ([]byte, error) {
	data, err := u.get(c, rawUrl)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		c.WithFields(log.Fields{
			"url": rawUrl,
		}).Error("invalid json")
		return nil, domain.ErrInvalidJsonFormat
	}

	return data, nil
}

func (u *contentUseCase) get(c bCtx.Ctx, rawUrl string) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	pUrl, err := url.Parse(rawUrl)
	if err != nil {
		c.WithFields(log.Fields{
			"url": rawUrl,
			"err": err,
		}).Error("failed to parse url")
		return nil, err
	}

	switch pUrl.Scheme {
	case "https", "http":
		data, err = u.httpReader.Get(c, rawUrl)
	case "ipfs":
		ipfsUrl := strings.TrimPrefix(rawUrl, "ipfs://")
		ipfsUrl = strings.TrimPrefix(ipfsUrl, "ipfs/")
		data, err = u.ipfsReader.Get(c, ipfsUrl)
	case "data":
		data, err = u.dataUriReader.Get(c, rawUrl)
	default:
		return nil, domain.ErrUnsupportedSchema
	}

	if err == nil {
		return data, nil
	}

	if pUrl.Scheme == "https" {
		ipfsUrl := getIpfsUrl(rawUrl)
		if len(ipfsUrl) > 0 {
			c.WithFields(log.Fields{
				"url":     rawUrl,
				"ipfsUrl": ipfsUrl,
			}).Info("falling back to ipfs")
			return u.get(c, ipfsUrl)
		}
	}

	c.WithFields(log.Fields{
		"schema": pUrl.Scheme,
		"url":    rawUrl,
		"err":    err,
	}).Error("failed to fetch")
	return nil, err
}

var dedicatedPinataRegex = regexp.MustCompile(`^https://[^/]+\.mypinata\.cloud/ipfs/`)

func getIpfsUrl(url string) string {
	var (
		pinataPrefix     = "https://gateway.pinata.cloud/ipfs/"
		ipfsIoPrefix     = "https://ipfs.io/ipfs/"
		cloudflarePrefix = "https://cloudflare-ipfs.com/ipfs/"
		ipfsPrefix       = "ipfs://"
	)

	fixedPrefix := []string{pinataPrefix, ipfsIoPrefix, cloudflarePrefix}
	for _, p := range fixedPrefix {
		if strings.HasPrefix(url, p) {
			return strings.Replace(url, p, ipfsPrefix, 1)
		}
	}
	if dedicatedPinataRegex.MatchString(url) {
		return dedicatedPinataRegex.ReplaceAllLiteralString(url, ipfsPrefix)
	}
	return ""
}
