// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package sections

import "github.com/auxility/site/internal/content"

// Compiled-in content used when a collection is unreachable, unconfigured or
// empty. Keep field names in sync with the spreadsheet columns.

var defaultHero = []content.Row{{
	"field":              content.HeroField,
	"badge_text":         "Trusted by FinTech & Healthcare Leaders",
	"title":              "Powered by Innovation, Committed to Efficiency",
	"subtitle":           "We build secure, compliant, and user-friendly custom software for FinTech and Healthcare industries. Your vision, our expertise.",
	"cta_primary_text":   "Start Your Project",
	"cta_primary_link":   "#contact",
	"cta_secondary_text": "View Our Work",
	"cta_secondary_link": "#cases",
	"stats_value_1":      "50+",
	"stats_label_1":      "Projects Delivered",
	"stats_value_2":      "98%",
	"stats_label_2":      "Client Satisfaction",
	"stats_value_3":      "10+",
	"stats_label_3":      "Years Experience",
}}

var defaultStats = []content.Row{
	{"id": "projects", "value": "50+", "label": "Projects Delivered", "icon": "Briefcase", "order": "1"},
	{"id": "satisfaction", "value": "98%", "label": "Client Satisfaction", "icon": "Star", "order": "2"},
	{"id": "experience", "value": "10+", "label": "Years Experience", "icon": "Calendar", "order": "3"},
}

var defaultServices = []content.Row{
	{
		"id":          "fintech",
		"category":    "fintech",
		"title":       "FinTech Solutions",
		"description": "Banking platforms, payment gateways, and investment tools built with security-first architecture.",
		"feature_1":   "Payment Processing",
		"feature_2":   "Regulatory Compliance",
		"feature_3":   "Real-time Analytics",
		"feature_4":   "Fraud Detection",
		"icon":        "Building2",
	},
	{
		"id":          "healthcare",
		"category":    "healthcare",
		"title":       "Healthcare Systems",
		"description": "HIPAA-compliant telemedicine, EHR integrations, and patient management solutions.",
		"feature_1":   "Telemedicine Platforms",
		"feature_2":   "EHR Integration",
		"feature_3":   "Patient Portals",
		"feature_4":   "Clinical Workflows",
		"icon":        "Heart",
	},
}

var defaultTestimonials = []content.Row{
	{
		"id":      "1",
		"quote":   "Auxility delivered our banking platform ahead of schedule with exceptional attention to security. Their FinTech expertise saved us months of development time.",
		"author":  "Sarah Chen",
		"role":    "CTO, Digital Banking Startup",
		"company": "FinanceFlow",
		"active":  "TRUE",
	},
	{
		"id":      "2",
		"quote":   "The telemedicine solution they built has transformed how we deliver care. Patient satisfaction increased by 40% within the first quarter.",
		"author":  "Dr. Michael Roberts",
		"role":    "Chief Medical Officer",
		"company": "Regional Health Network",
		"active":  "TRUE",
	},
	{
		"id":      "3",
		"quote":   "Working with Auxility felt like having an in-house team. They understood our compliance requirements from day one and delivered a HIPAA-compliant solution.",
		"author":  "Emily Watson",
		"role":    "VP of Technology",
		"company": "MedTech Solutions",
		"active":  "TRUE",
	},
	{
		"id":      "4",
		"quote":   "Their market research helped us pivot our product strategy before development. We avoided costly mistakes and launched with product-market fit.",
		"author":  "James Okonkwo",
		"role":    "Founder & CEO",
		"company": "PaymentPro",
		"active":  "TRUE",
	},
	{
		"id":      "5",
		"quote":   "Outstanding technical expertise combined with genuine care for our business outcomes. The ICU system they built is now saving lives daily.",
		"author":  "Dr. Lisa Park",
		"role":    "Director of Critical Care",
		"company": "Metropolitan Hospital",
		"active":  "TRUE",
	},
}

var defaultCases = []content.Row{
	{
		"id":          "icu",
		"title":       "ICU Management System",
		"category":    "Healthcare",
		"description": "Real-time patient monitoring and clinical decision support system for intensive care units.",
		"tag_1":       "React",
		"tag_2":       "Node.js",
		"tag_3":       "FHIR",
		"tag_4":       "Real-time",
		"color":       "healthcare",
	},
	{
		"id":          "halyk",
		"title":       "HALYK Bank Platform",
		"category":    "FinTech",
		"description": "Digital banking transformation with mobile-first approach and seamless payment integrations.",
		"tag_1":       "React Native",
		"tag_2":       "Microservices",
		"tag_3":       "Security",
		"color":       "fintech",
	},
	{
		"id":          "telemedicine",
		"title":       "Telemedicine Portal",
		"category":    "Healthcare",
		"description": "HIPAA-compliant video consultation platform connecting patients with healthcare providers.",
		"tag_1":       "WebRTC",
		"tag_2":       "AWS",
		"tag_3":       "HIPAA",
		"tag_4":       "EHR Integration",
		"color":       "healthcare",
	},
	{
		"id":          "uub",
		"title":       "UUB Investment App",
		"category":    "FinTech",
		"description": "Retail investment platform with real-time market data and personalized portfolio management.",
		"tag_1":       "Flutter",
		"tag_2":       "Trading APIs",
		"tag_3":       "Analytics",
		"color":       "fintech",
	},
}

var defaultOfferings = []content.Row{
	{"id": "web", "title": "Web Development", "icon": "Globe", "order": "1",
		"description": "Responsive web applications built with modern frameworks for optimal performance and user experience."},
	{"id": "mobile", "title": "Mobile Development", "icon": "Smartphone", "order": "2",
		"description": "Native and cross-platform mobile apps that deliver seamless experiences on iOS and Android."},
	{"id": "consulting", "title": "Consulting & Strategy", "icon": "Lightbulb", "order": "3",
		"description": "Technical consulting to help you make informed decisions about architecture and technology stack."},
	{"id": "integration", "title": "System Integration", "icon": "Link", "order": "4",
		"description": "Connect your systems with third-party services, APIs, and legacy infrastructure seamlessly."},
	{"id": "research", "title": "Market Research", "icon": "Search", "order": "5",
		"description": "Data-driven insights to understand your market, competitors, and user needs before building."},
	{"id": "analytics", "title": "Analytics & BI", "icon": "BarChart3", "order": "6",
		"description": "Transform your data into actionable insights with custom dashboards and reporting tools."},
}

var defaultWhyUs = []content.Row{
	{"id": "team", "title": "Dedicated Team", "icon": "Users", "order": "1",
		"description": "Your project gets a dedicated team of senior engineers who understand your domain."},
	{"id": "security", "title": "Security First", "icon": "Shield", "order": "2",
		"description": "We build with compliance in mind: HIPAA, PCI-DSS, GDPR from day one."},
	{"id": "delivery", "title": "Fast Delivery", "icon": "Zap", "order": "3",
		"description": "Agile methodology ensures rapid iterations and transparent progress."},
	{"id": "budget", "title": "On-Time, On-Budget", "icon": "Clock", "order": "4",
		"description": "98% of our projects are delivered on schedule with predictable costs."},
	{"id": "expertise", "title": "Industry Expertise", "icon": "Award", "order": "5",
		"description": "10+ years of focused experience in FinTech and Healthcare sectors."},
	{"id": "partnership", "title": "Long-Term Partnership", "icon": "HeartHandshake", "order": "6",
		"description": "We're invested in your success with ongoing support and continuous improvement."},
}

var defaultContact = []content.Row{
	{"field": "email", "value": "hello@auxility.ca"},
	{"field": "phone", "value": "+1 (416) 555-0123"},
	{"field": "address", "value": "Toronto, Canada"},
}

var defaultSEO = []content.Row{
	{"field": "site_name", "value": "Auxility"},
	{"field": "image", "value": "/og-image.png"},
	{"field": "url", "value": "https://auxility.com"},
}
