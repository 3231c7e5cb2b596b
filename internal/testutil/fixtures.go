package testutil

// RawSourceJSON is a small spreadsheet export in the shape the checklist
// sheets produce: the first named column header is "Fire", the usage column
// "Level 80", and unnamed move columns become __2..__4.
//
// Converted rows, in order: Charizard (Special), Charizard (Physical),
// Arcanine (Physical), Blissey (Support, from the Utility sheet).
// Skipped: the leaked header row, Typhlosion (ambiguous usage), "pick 5"
// (invalid name), Ninetales (no usage).
const RawSourceJSON = `{
  "fire": [
    {"Fire": "Level 80", "Level 80": "Level 80", "Moves": "Moves"},
    {"Fire": "Charizard", "Level 80": "Special", "Secondary Usage": "Flying, Dragon", "Moves": "Air Slash", "__2": "Heat Wave", "Ability": "Solar Power"},
    {"Fire": "Charizard", "Level 80": "Phys", "Moves": "Flare Blitz", "__2": "Dragon Claw", "Choices": "NEEDED"},
    {"Fire": "Typhlosion", "Level 80": "Physical/Special mix"},
    {"Fire": "pick 5", "Level 80": "Physical"},
    {"Fire": "Arcanine", "Level 80": "physical attacker", "Secondary Usage": "intimidate lead", "Choices": "Choice Band"},
    {"Fire": "Ninetales", "Level 80": "", "Ability": "Drought"}
  ],
  "Utility": [
    {"Fire": "Blissey", "Level 80": "Utility", "Ability": "Natural Cure", "held_item": "Leftovers"}
  ]
}`
