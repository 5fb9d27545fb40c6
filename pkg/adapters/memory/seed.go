package memory

import "github.com/KelvinH2322/coffeehelper/pkg/domain"

// SeedMachines returns the demo coffee machines.
func SeedMachines() []domain.Machine {
	return []domain.Machine{
		{ID: "machine-001", Brand: "Breville", Model: "Barista Express"},
		{ID: "machine-002", Brand: "DeLonghi", Model: "Magnifica"},
		{ID: "machine-003", Brand: "Gaggia", Model: "Classic Pro"},
		{ID: "machine-004", Brand: domain.GenericMachine, Model: "Espresso Pro"},
	}
}

// SeedGuides returns the demo instruction guides.
func SeedGuides() []domain.Guide {
	return []domain.Guide{
		{
			ID:           "guide-001",
			Title:        "Daily Cleaning Routine for Breville Barista Express",
			Category:     domain.CategoryCleaning,
			MachineBrand: "Breville",
			MachineModel: "Barista Express",
			Summary:      "Learn the essential daily cleaning steps to keep your Breville Barista Express in top condition.",
			ImageURL:     "https://picsum.photos/seed/guide1/400/300",
			Steps: []domain.GuideStep{
				{Title: "Flush Group Head", Description: "Run water through the group head to remove coffee grounds."},
				{Title: "Clean Portafilter", Description: "Wipe the portafilter basket clean after each use."},
				{Title: "Purge Steam Wand", Description: "Purge and wipe the steam wand immediately after frothing milk.", ImageURL: "https://picsum.photos/seed/steamwand/300/200"},
			},
			Tools:        []string{"Cleaning brush", "Microfiber cloth"},
			SafetyAlerts: []string{"Ensure machine is cooled down before cleaning steam wand tip."},
		},
		{
			ID:           "guide-002",
			Title:        "Descale Your DeLonghi Magnifica",
			Category:     domain.CategoryMaintenance,
			MachineBrand: "DeLonghi",
			MachineModel: "Magnifica",
			Summary:      "A step-by-step guide to descaling your DeLonghi Magnifica for optimal performance and longevity.",
			ImageURL:     "https://picsum.photos/seed/guide2/400/300",
			Steps: []domain.GuideStep{
				{Title: "Prepare Descaling Solution", Description: "Mix the descaling solution according to the manufacturer's instructions."},
				{Title: "Run Descaling Cycle", Description: "Follow your machine's specific descaling cycle instructions.", VideoURL: "https://www.youtube.com/embed/exampleVideoID"},
				{Title: "Rinse Thoroughly", Description: "Run several tanks of fresh water through the machine to rinse."},
			},
			Tools: []string{"DeLonghi descaler", "Large container"},
		},
		{
			ID:           "guide-003",
			Title:        "Fixing Low Pressure on Gaggia Classic Pro",
			Category:     domain.CategoryRepair,
			MachineBrand: "Gaggia",
			MachineModel: "Classic Pro",
			Summary:      "Troubleshoot and fix common causes of low brew pressure on your Gaggia Classic Pro.",
			ImageURL:     "https://picsum.photos/seed/guide3/400/300",
			Steps: []domain.GuideStep{
				{Title: "Check Coffee Grind", Description: "Ensure your coffee grind is not too coarse."},
				{Title: "Clean Shower Screen", Description: "A clogged shower screen can reduce pressure. Unscrew and clean it."},
				{Title: "Inspect Pump (Advanced)", Description: "If other steps fail, the pump may need inspection or replacement. This may require professional help."},
			},
			Tools:        []string{"Screwdriver", "Brush"},
			SafetyAlerts: []string{"Unplug the machine before attempting any internal repairs."},
		},
		{
			ID:           "guide-004",
			Title:        "Basic Espresso Machine Maintenance",
			Category:     domain.CategoryMaintenance,
			MachineBrand: domain.GenericMachine,
			MachineModel: "Espresso Pro",
			Summary:      "General maintenance tips applicable to most espresso machines.",
			ImageURL:     "https://picsum.photos/seed/guide4/400/300",
			Steps: []domain.GuideStep{
				{Title: "Daily Wipe Down", Description: "Wipe the exterior of the machine daily."},
				{Title: "Backflush (if applicable)", Description: "Perform a backflush routine if your machine supports it."},
				{Title: "Check Water Reservoir", Description: "Regularly clean the water reservoir to prevent buildup."},
			},
			Tools: []string{"Microfiber cloth", "Blind basket (for backflushing)"},
		},
	}
}

// SeedSteps returns the demo troubleshooting graph.
func SeedSteps() []domain.Step {
	return []domain.Step{
		domain.Question{
			ID:   domain.EntryPointID,
			Text: "What problem are you experiencing with your coffee machine?",
			Options: []domain.Option{
				{Text: "Machine is leaking water", NextStepID: "q-leak-location"},
				{Text: "No coffee coming out", NextStepID: "q-no-coffee-water"},
				{Text: "Coffee tastes bad", NextStepID: "q-bad-taste-type"},
				{Text: "Machine not turning on", NextStepID: "sol-power-check"},
			},
		},
		domain.Question{
			ID:   "q-leak-location",
			Text: "Where is the machine leaking from?",
			Options: []domain.Option{
				{Text: "Group head", NextStepID: "sol-leak-grouphead"},
				{Text: "Steam wand", NextStepID: "sol-leak-steamwand"},
				{Text: "Underneath the machine", NextStepID: "sol-leak-underneath"},
			},
		},
		domain.Solution{
			ID:          "sol-leak-grouphead",
			Title:       "Leaking Group Head",
			Description: "A leaking group head is often due to a worn-out group head gasket. Consider replacing it. You can find general instructions for gasket replacement in many maintenance guides.",
			GuideID:     "guide-003",
		},
		domain.Question{
			ID:   "q-no-coffee-water",
			Text: "Is water flowing through the group head when you try to brew (without portafilter)?",
			Options: []domain.Option{
				{Text: "Yes, water flows", NextStepID: "sol-no-coffee-grind-tamp"},
				{Text: "No, water does not flow or very little", NextStepID: "sol-no-coffee-blockage"},
			},
		},
		domain.Solution{
			ID:          "sol-no-coffee-grind-tamp",
			Title:       "Check Grind and Tamp",
			Description: "If water flows but no coffee, your coffee grind might be too fine or you might be tamping too hard, choking the machine. Try a coarser grind or lighter tamp. Refer to your machine's manual for grind settings.",
			GuideID:     "guide-003",
		},
		domain.Solution{
			ID:               "sol-no-coffee-blockage",
			Title:            "Potential Blockage or Pump Issue",
			Description:      "If no water flows, there might be a blockage in the water line, a pump issue, or the machine needs descaling. Try descaling first. If the issue persists, it might require professional help or checking the pump.",
			GuideID:          "guide-002",
			ProfessionalHelp: true,
		},
		domain.Question{
			ID:   "q-bad-taste-type",
			Text: "How would you describe the bad taste?",
			Options: []domain.Option{
				{Text: "Bitter or burnt", NextStepID: "sol-bad-taste-bitter"},
				{Text: "Sour or acidic", NextStepID: "sol-bad-taste-sour"},
				{Text: "Metallic or stale", NextStepID: "sol-bad-taste-stale"},
			},
		},
		domain.Solution{
			ID:          "sol-bad-taste-bitter",
			Title:       "Bitter Coffee",
			Description: "Bitter coffee can be due to over-extraction (grind too fine, brew time too long), water too hot, or stale/over-roasted beans. Also, ensure your machine is clean.",
			GuideID:     "guide-001",
		},
		domain.Solution{
			ID:               "sol-power-check",
			Title:            "Machine Not Turning On",
			Description:      "Ensure the machine is properly plugged into a working power outlet. Check the power cord for damage. If it still doesn't turn on, there might be an internal electrical issue requiring professional service.",
			ProfessionalHelp: true,
		},
	}
}

// SeededStepStore builds a step store pre-populated with the demo graph.
func SeededStepStore() *StepStore {
	store := NewStepStore()
	for _, step := range SeedSteps() {
		// Seed data has unique ids; Upsert cannot fail here.
		_ = store.Upsert(step)
	}
	return store
}

// SeededCatalog builds a catalog pre-populated with the demo guides.
func SeededCatalog() *Catalog {
	return NewCatalog(SeedGuides()...)
}
