// Package seed holds the default site content shown before any remote data
// exists and used to initialise an empty object store.
package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"school-cms/internal/domain/entity"
)

//go:embed seed.yaml
var raw []byte

type document struct {
	Events  []entity.Event        `yaml:"events"`
	Gallery []entity.GalleryImage `yaml:"gallery"`
	News    []entity.NewsArticle  `yaml:"news"`
}

var (
	once   sync.Once
	parsed document
	err    error
)

func load() document {
	once.Do(func() {
		if e := yaml.Unmarshal(raw, &parsed); e != nil {
			err = fmt.Errorf("parse seed.yaml: %w", e)
		}
	})
	// 埋め込みデータが壊れているのはビルド時の不具合
	if err != nil {
		panic(err)
	}
	return parsed
}

// Events returns a fresh copy of the default events.
func Events() []entity.Event {
	return append([]entity.Event(nil), load().Events...)
}

// Gallery returns a fresh copy of the default gallery images.
func Gallery() []entity.GalleryImage {
	return append([]entity.GalleryImage(nil), load().Gallery...)
}

// News returns a fresh copy of the default news articles.
func News() []entity.NewsArticle {
	return append([]entity.NewsArticle(nil), load().News...)
}
