// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

// Collection names published by the content endpoint.
const (
	CollectionHero         = "Hero"
	CollectionServices     = "Services"
	CollectionTestimonials = "Testimonials"
	CollectionCases        = "Cases"
	CollectionStats        = "Stats"
	CollectionOfferings    = "Offerings"
	CollectionWhyUs        = "WhyUs"
	CollectionContact      = "Contact"
	CollectionSEO          = "SEO"
	CollectionCopy         = "Copy"
	CollectionContacts     = "Contacts" // write-only: contact form submissions
)

// HeroField is the "field" value selecting the main hero row.
const HeroField = "main"
