// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

package catalog

import (
	"strings"

	"golang.org/x/net/html"
)

// Listing is one raw entry lifted out of a category document, before any
// normalization. Fields hold whatever text the document offered; the
// adapter decides what survives into a ProductRecord.
type Listing struct {
	Name         string
	PriceText    string
	RegularPrice string
	ImageRef     string
	DetailRef    string
	Description  string
}

// ListingExtractor lifts raw listings out of one external document shape.
// The source's markup is unstable, so extraction is best-effort: an
// unrecognized document simply yields no listings.
type ListingExtractor interface {
	Extract(doc *html.Node) []Listing
}

// prestaExtractor understands PrestaShop-style product grids: an
// article.product-miniature (or any .js-product-miniature) per listing,
// with .product-title, .price, .regular-price, .product-description-short
// and a lazy-loaded image.
type prestaExtractor struct{}

func (prestaExtractor) Extract(doc *html.Node) []Listing {
	cards := findAll(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		return (n.Data == "article" && hasClass(n, "product-miniature")) ||
			hasClass(n, "js-product-miniature")
	})

	listings := make([]Listing, 0, len(cards))
	for _, card := range cards {
		anchor := titleAnchor(card)
		l := Listing{
			Name:         textContent(anchor),
			PriceText:    textContent(firstByClass(card, "price")),
			RegularPrice: textContent(firstByClass(card, "regular-price")),
			Description:  textContent(firstByClass(card, "product-description-short")),
			DetailRef:    getAttr(anchor, "href"),
		}
		if img := firstImage(card); img != nil {
			l.ImageRef = getAttr(img, "data-src")
			if l.ImageRef == "" {
				l.ImageRef = getAttr(img, "src")
			}
		}
		listings = append(listings, l)
	}
	return listings
}

// titleAnchor finds the listing's title link: an <a> under .product-title,
// falling back to an <a> under an h2.h3 heading.
func titleAnchor(card *html.Node) *html.Node {
	if title := firstByClass(card, "product-title"); title != nil {
		if a := firstElement(title, "a"); a != nil {
			return a
		}
	}
	for _, h2 := range findAll(card, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "h2" && hasClass(n, "h3")
	}) {
		if a := firstElement(h2, "a"); a != nil {
			return a
		}
	}
	return nil
}

func firstImage(card *html.Node) *html.Node {
	imgs := findAll(card, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "img"
	})
	for _, img := range imgs {
		if hasClass(img, "lazy") {
			return img
		}
	}
	if len(imgs) > 0 {
		return imgs[0]
	}
	return nil
}

// findAll walks the tree depth-first collecting nodes matching the
// predicate. Matched nodes are not descended into, so nested cards cannot
// produce duplicates.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func firstByClass(n *html.Node, class string) *html.Node {
	found := findAll(n, func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClass(n, class)
	})
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func firstElement(n *html.Node, tag string) *html.Node {
	found := findAll(n, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	})
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// textContent returns the node's text, whitespace-collapsed and trimmed.
func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
