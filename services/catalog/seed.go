// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

package catalog

import "github.com/shopspring/decimal"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// SeedCatalog returns the bundled seed dataset: a fixed, representative
// record per major category, used only when no cached or live data exists.
// Callers get a fresh slice each time; the records themselves are shared.
func SeedCatalog() []ProductRecord {
	out := make([]ProductRecord, len(seedProducts))
	copy(out, seedProducts)
	return out
}

var seedProducts = []ProductRecord{
	{
		ID:          "nh-anchor-delta-stainless-40kg",
		Name:        "Delta anchor stainless steel 40kg",
		Price:       dec("5813.06"),
		ImageURL:    "/products/delta-anchor.png",
		Description: "Self-launching plough anchor with a low centre of gravity and self-righting geometry. Approved as a High Holding Power anchor.",
		Category:    "Anchoring & Docking",
		SourceURL:   "https://www.nautichandler.com/en/6779-delta-anchor-stainless-steel-40kg.html",
	},
	{
		ID:            "nh-maxistow-hd-inflatable-fender-75x30",
		Name:          "Maxistow HD inflatable fender dark grey 75x30cm",
		Price:         dec("197.77"),
		OriginalPrice: decPtr("219.74"),
		ImageURL:      "/products/maxistow-hd.png",
		Description:   "Light and easy to handle when inflated, stows into a small locker when deflated. Abrasion and UV resistant fabric.",
		Category:      "Anchoring & Docking",
		SourceURL:     "https://www.nautichandler.com/en/8525-maxistow-hd-inflatable-fender-dark-grey-75x30cm.html",
	},
	{
		ID:            "nh-retro-reflective-tape-solas-50mm",
		Name:          "Retro reflective tape SOLAS 50mmx1m",
		Price:         dec("38.82"),
		OriginalPrice: decPtr("48.52"),
		ImageURL:      "/products/retro-reflective.png",
		Description:   "Increases visibility of inflatables, life vests and life buoys.",
		Category:      "Safety",
		SourceURL:     "https://www.nautichandler.com/en/1924-retro-reflective-tape-solas-50mmx1m.html",
	},
	{
		ID:            "nh-lifejacket-pilot-165-harness",
		Name:          "Lifejacket pilot 165 with harness",
		Price:         dec("84.37"),
		OriginalPrice: decPtr("105.46"),
		ImageURL:      "/products/lifejacket-pilot.png",
		Description:   "Rated 150 N, actual buoyancy 165 N. XXL size available with 60-175 cm belt.",
		Category:      "Safety",
		SourceURL:     "https://www.nautichandler.com/en/17482-lifejacket-pilot-165-with-harness.html",
	},
	{
		ID:          "nh-liferaft-4-person-valise-iso9650",
		Name:        "Liferaft 4 person valise ISO9650",
		Price:       dec("2383.51"),
		ImageURL:    "/products/liferaft-4-person.png",
		Description: "ISO9650 compliant life raft. Available in canister or valise.",
		Category:    "Safety",
		SourceURL:   "https://www.nautichandler.com/en/16541-liferaft-4-person-valise-iso9650.html",
	},
	{
		ID:            "nh-insulating-tape-pvc-grey-19x25",
		Name:          "Insulating tape PVC grey 19mmx25m",
		Price:         dec("3.81"),
		OriginalPrice: decPtr("4.48"),
		ImageURL:      "/products/insulating-tape.png",
		Description:   "General use in electrical applications, insulation and clamping, marking of installations.",
		Category:      "Electrics - Lighting",
		SourceURL:     "https://www.nautichandler.com/en/9252-insulating-tape-pvc-grey-19x25mm.html",
	},
	{
		ID:          "nh-orion-tr-converter-1212v-30a",
		Name:        "Orion TR converter 12/12V-30A 360W",
		Price:       dec("260.15"),
		ImageURL:    "/products/orion-tr-converter.png",
		Description: "DC-DC converter for charging a second battery bank.",
		Category:    "Electrics - Lighting",
		SourceURL:   "https://www.nautichandler.com/en/13520-orion-tr-converter-1212v30a-360w.html",
	},
	{
		ID:            "nh-bag-halyard-pvc-white-30x20x10",
		Name:          "Bag halyard PVC white 30x20x10cm",
		Price:         dec("46.71"),
		OriginalPrice: decPtr("58.39"),
		ImageURL:      "/products/bag-halyard.png",
		Description:   "PVC or Dralon, mesh canvas, batten and grommets.",
		Category:      "Ropes",
		SourceURL:     "https://www.nautichandler.com/en/15044-bag-halyard-pvc-white-30x20x10cm.html",
	},
	{
		ID:            "nh-dyneema-regatta-2000-blue-8mm",
		Name:          "Dyneema regatta 2000 blue 8mm",
		Price:         dec("6.77"),
		OriginalPrice: decPtr("7.52"),
		ImageURL:      "/products/dyneema-regatta.png",
		Description:   "Dyneema SK75 core with a high-torsion polyester sheath. Price per meter.",
		Category:      "Ropes",
		SourceURL:     "https://www.nautichandler.com/en/9606-dyneema-regatta-2000-blue-8mm.html",
	},
	{
		ID:            "nh-oil-absorbents-480x430x3-1l",
		Name:          "Oil absorbents 480x430x3mm x unity 1L",
		Price:         dec("1.51"),
		OriginalPrice: decPtr("1.89"),
		ImageURL:      "/products/oil-absorbents.png",
		Description:   "Spill control sheets for a wide variety of applications, minimizing environmental impact.",
		Category:      "Motor",
		SourceURL:     "https://www.nautichandler.com/en/156-oil-absorbents-480x430x3mm-x-unity-1l.html",
	},
	{
		ID:          "nh-exhaust-pipe-35",
		Name:        "Exhaust pipe 3.5 inch",
		Price:       dec("88.33"),
		ImageURL:    "/products/exhaust-pipe-35.png",
		Description: "Rubber tube, inner diameter 3.5 inch. Price per meter.",
		Category:    "Motor",
		SourceURL:   "https://www.nautichandler.com",
	},
	{
		ID:            "nh-offshore-105-compass-conical",
		Name:          "Offshore 105 compass black conical card",
		Price:         dec("257.70"),
		OriginalPrice: decPtr("322.13"),
		ImageURL:      "/products/offshore-compass.png",
		Description:   "For powerboats 5 to 10 m (17 to 33 ft).",
		Category:      "Navigation",
		SourceURL:     "https://www.nautichandler.com/en/16136-offshore-105-compass-black-conical-card.html",
	},
	{
		ID:            "nh-spinnaker-repair-tape-50mm",
		Name:          "Spinnaker repair tape black 50mmx4,5m",
		Price:         dec("15.14"),
		OriginalPrice: decPtr("18.93"),
		ImageURL:      "/products/spinnaker-repair.png",
		Description:   "Self-adhesive nylon tape for sail repairs.",
		Category:      "Maintenance - Cleaning Products",
		SourceURL:     "https://www.nautichandler.com/en/2107-spinnaker-repair-tape-black-50mmx45m.html",
	},
	{
		ID:            "nh-wire-rope-clamp-ssteel-3mm",
		Name:          "Wire rope clamp s.steel 3mm (2 units)",
		Price:         dec("2.89"),
		OriginalPrice: decPtr("3.61"),
		ImageURL:      "/products/wire-rope-clamp.png",
		Description:   "AISI-316 stainless steel clamp cable tie.",
		Category:      "Fitting",
		SourceURL:     "https://www.nautichandler.com/en/6807-wire-rope-clamp-ssteel-3mm-2units.html",
	},
	{
		ID:          "nh-water-kit-tank-230v-15l",
		Name:        "Water kit tank 230V 50-60Hz 15L",
		Price:       dec("349.72"),
		ImageURL:    "/products/water-kit-tank.png",
		Description: "Water tank 15L with pump.",
		Category:    "Life On Board",
		SourceURL:   "https://www.nautichandler.com/en/17208-water-kit-tank-230v-5060hz-15l.html",
	},
	{
		ID:          "nh-echomap-uhd-62cv-transducer",
		Name:        "Echomap UHD 62cv with transducer GT24",
		Price:       dec("749.00"),
		ImageURL:    "/products/echomap-uhd.png",
		Description: "Sunlight-readable 6 inch chartplotter with Ultra High-Definition scanning sonar and CHIRP traditional sonar.",
		Category:    "Electronics",
		SourceURL:   "https://www.nautichandler.com/en/12805-echomap-uhd-62cv-with-transducer-gt24.html",
	},
}
