package models

// DefaultServices, boş bir kurulumda ilk açılışta oluşturulan hizmetler.
var DefaultServices = []CreateServiceRequest{
	{
		Title:       "Leak Detection and Repair",
		Description: "Advanced leak detection technology to find and fix leaks before they cause major damage.",
		Icon:        "fas fa-search",
	},
	{
		Title:       "Plumbing Fixture Installation",
		Description: "Professional installation of faucets, toilets, sinks, and other plumbing fixtures.",
		Icon:        "fas fa-wrench",
	},
	{
		Title:       "Water Heater Diagnostics, Repair, and Installation",
		Description: "Complete water heater services including diagnosis, repair, and new installations.",
		Icon:        "fas fa-thermometer-half",
	},
	{
		Title:       "Partial and Whole Home Repipe",
		Description: "Complete repiping services for homes with old or damaged plumbing systems.",
		Icon:        "fas fa-home",
	},
	{
		Title:       "Drain Cleaning, Sewer Jetting, and Root Removal",
		Description: "Professional drain cleaning services including hydro jetting and root removal.",
		Icon:        "fas fa-shower",
	},
	{
		Title:       "Water and Sewer Line Services",
		Description: "Complete water and sewer line repair, replacement, and installation services.",
		Icon:        "fas fa-tools",
	},
}

// DefaultFAQs, boş bir kurulumda ilk açılışta oluşturulan sorular.
var DefaultFAQs = []CreateFAQRequest{
	{
		Question: "What are your business hours?",
		Answer:   "Our business hours are Monday-Friday 8:00AM - 4:00PM.",
	},
	{
		Question: "Do you offer emergency services?",
		Answer:   "Yes, we offer emergency services within normal business hours.",
	},
	{
		Question: "Do you provide free estimates?",
		Answer:   "Yes, estimates are free of charge.",
	},
	{
		Question: "How do I schedule a service?",
		Answer:   "Call us or use the contact form on this website.",
	},
}
