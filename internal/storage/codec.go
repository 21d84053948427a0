package storage

import (
	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/Veraticus/context-lens/internal/model"
)

// codec serializes stored values. History entries embed full data-URI
// previews, so the history blob is zstd-compressed; the profile is plain JSON.
type codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newCodec() (*codec, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, storageErr("create zstd encoder", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		encoder.Close()
		return nil, storageErr("create zstd decoder", err)
	}
	return &codec{encoder: encoder, decoder: decoder}, nil
}

func (c *codec) close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}

func (c *codec) encodeProfile(profile *model.UserProfile) ([]byte, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, storageErr("encode profile", err)
	}
	return data, nil
}

func (c *codec) decodeProfile(data []byte) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, storageErr("decode profile", err)
	}
	return &profile, nil
}

func (c *codec) encodeHistory(items []model.HistoryItem) ([]byte, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, storageErr("encode history", err)
	}
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func (c *codec) decodeHistory(data []byte) ([]model.HistoryItem, error) {
	raw, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, storageErr("decompress history", err)
	}

	var items []model.HistoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, storageErr("decode history", err)
	}
	if items == nil {
		items = []model.HistoryItem{}
	}
	return items, nil
}
