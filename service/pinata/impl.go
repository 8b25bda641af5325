package pinata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
)

const (
	defaultEndpoint = "https://api.pinata.cloud"
	pinPath         = "/pinning/pinFileToIPFS"
	pinJsonPath     = "/pinning/pinJSONToIPFS"
	pinListPath     = "/data/pinList"
)

type pinataImpl struct {
	apiKey    string
	apiSecret string
	endpoint  string
	client    HttpDoer
}

func New(cfg Config) Service {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	return &pinataImpl{
		apiKey:    cfg.ApiKey,
		apiSecret: cfg.ApiSecret,
		endpoint:  cfg.Endpoint,
		client:    cfg.Client,
	}
}

func (im *pinataImpl) Pin(c ctx.Ctx, file io.Reader, filename string, optFns ...Options) (string, error) {
	opts, err := GetPinOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("GetPinOptions failed")
		return "", err
	}

	var b bytes.Buffer

	w := multipart.NewWriter(&b)
	if fw, err := w.CreateFormFile("file", filename); err != nil {
		c.WithField("err", err).Error("w.CreateFormFile failed")
		return "", err
	} else if _, err := io.Copy(fw, file); err != nil {
		c.WithField("err", err).Error("io.Copy failed")
		return "", err
	}

	if opts.Metadata != nil {
		if b, err := json.Marshal(opts.Metadata); err != nil {
			c.WithField("err", err).Error("json.Marshal failed")
			return "", err
		} else if err := w.WriteField("pinataMetadata", string(b)); err != nil {
			return "", err
		}
	}

	if opts.Options != nil {
		if b, err := json.Marshal(opts.Options); err != nil {
			c.WithField("err", err).Error("json.Marshal failed")
			return "", err
		} else if err := w.WriteField("pinataOptions", string(b)); err != nil {
			return "", err
		}
	}

	if err := w.Close(); err != nil {
		c.WithField("err", err).Error("w.Close failed")
		return "", err
	}

	return im.pin(c, im.endpoint+pinPath, w.FormDataContentType(), &b)
}

func (im *pinataImpl) PinJson(c ctx.Ctx, value interface{}, optFns ...Options) (string, error) {
	opts, err := GetPinOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("GetPinOptions failed")
		return "", err
	}

	opts.PinataContent = value

	body, err := json.Marshal(opts)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return "", err
	}

	return im.pin(c, im.endpoint+pinJsonPath, "application/json", bytes.NewReader(body))
}

func (im *pinataImpl) pin(c ctx.Ctx, url, contentType string, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(c, http.MethodPost, url, body)
	if err != nil {
		c.WithField("err", err).Error("http.NewRequestWithContext failed")
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	type payload struct {
		IpfsHash string `json:"IpfsHash"`
	}

	p := &payload{}
	if err := im.do(c, req, p); err != nil {
		return "", err
	}
	return p.IpfsHash, nil
}

func (im *pinataImpl) PinList(c ctx.Ctx, keyvalues map[string]string) ([]Pin, error) {
	q := url.Values{}
	q.Set("status", "pinned")
	q.Set("sortBy", "date_pinned")
	q.Set("sortOrder", "DESC")
	for k, v := range keyvalues {
		filter, err := json.Marshal(map[string]string{"value": v, "op": "eq"})
		if err != nil {
			return nil, err
		}
		q.Set(fmt.Sprintf("metadata[keyvalues][%s]", k), string(filter))
	}

	req, err := http.NewRequestWithContext(c, http.MethodGet, im.endpoint+pinListPath+"?"+q.Encode(), nil)
	if err != nil {
		c.WithField("err", err).Error("http.NewRequestWithContext failed")
		return nil, err
	}

	type payload struct {
		Count int   `json:"count"`
		Rows  []Pin `json:"rows"`
	}

	p := &payload{}
	if err := im.do(c, req, p); err != nil {
		return nil, err
	}
	return p.Rows, nil
}

func (im *pinataImpl) do(c ctx.Ctx, req *http.Request, out interface{}) error {
	req.Header.Set("pinata_api_key", im.apiKey)
	req.Header.Set("pinata_secret_api_key", im.apiSecret)

	resp, err := im.client.Do(req)
	if err != nil {
		c.WithField("err", err).Error("client.Do failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		c.WithFields(log.Fields{
			"url":        req.URL.Path,
			"statusCode": resp.StatusCode,
			"errorBody":  string(errorBody),
		}).Error("Request failed")
		return ErrRequestFailed
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.WithField("err", err).Error("json.NewDecoder.Decode failed")
		return err
	}
	return nil
}
