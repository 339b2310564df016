package domain

// DefaultCatalog is written on first boot when no catalog exists yet.
var DefaultCatalog = []string{"Baguette", "Whole Wheat", "Rye", "Sourdough"}
