// Command validate provides a small CLI that validates rules configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board size bounds
//   - Ship inventory consistency (kinds, lengths, counts)
//   - That the inventory actually fits on the board (total ship cells
//     cannot exceed the cell count)
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"battleship-server/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Notes contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File  string
	Valid bool
	Notes []string
}

// validateRulesFile loads and validates a single rules JSON file.
func validateRulesFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
		Notes: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var rules engine.Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateRules(&rules); err != nil {
		result.Valid = false
		result.Notes = append(result.Notes, err.Error())
		return result
	}

	// The inventory must physically fit on the board.
	totalCells := 0
	for _, class := range rules.Inventory {
		totalCells += class.Length * class.Count
	}
	boardCells := rules.BoardSize * rules.BoardSize
	if totalCells > boardCells {
		result.Valid = false
		result.Notes = append(result.Notes,
			fmt.Sprintf("Inventory needs %d cells but the board only has %d", totalCells, boardCells))
		return result
	}

	result.Notes = append(result.Notes, fmt.Sprintf("Name: %s", rules.Name))
	result.Notes = append(result.Notes, fmt.Sprintf("Board: %dx%d", rules.BoardSize, rules.BoardSize))
	result.Notes = append(result.Notes, fmt.Sprintf("Ships: %d (%d cells)", rules.ShipCount(), totalCells))
	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding rules files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateRulesFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)
		if result.Valid {
			fmt.Println("VALID")
		} else {
			fmt.Println("INVALID")
			allValid = false
		}
		for _, note := range result.Notes {
			fmt.Println("  " + note)
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("All rules configurations are valid")
	} else {
		fmt.Println("Some rules configurations have errors")
		os.Exit(1)
	}
}
