/*
 * mode.go, part of goRED.
 *
 * Copyright 2026 The goRED authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package red

import "strings"

// FitMode is the charge model to derive.
type FitMode int

const (
	Debug FitMode = iota
	RespA1
	RespC1
	RespA2
	RespC2
	EspA1
	EspC1
	EspA2
	EspC2
)

var fitModeNames = []string{
	"DEBUG",
	"RESP-A1",
	"RESP-C1",
	"RESP-A2",
	"RESP-C2",
	"ESP-A1",
	"ESP-C1",
	"ESP-A2",
	"ESP-C2",
}

func (F FitMode) String() string {
	if F < 0 || int(F) >= len(fitModeNames) {
		return "UNKNOWN"
	}
	return fitModeNames[F]
}

// ParseFitMode returns the mode with the given name, case-insensitive.
func ParseFitMode(s string) (FitMode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, v := range fitModeNames {
		if v == s {
			return FitMode(i), nil
		}
	}
	return Debug, NewError(ErrUnknownFitMode, "ParseFitMode", "%q, use one of %s", s, strings.Join(fitModeNames, ", "))
}

// LinkRule selects how the links of the atoms that have an equivalent
// earlier in the molecule are set.
type LinkRule int

const (
	//Symmetric terminal groups are free in stage 1 and equivalenced in
	//stage 2. Everything else is equivalenced in stage 1 and frozen in 2.
	Stage1Rule LinkRule = iota
	//Everything is equivalenced in stage 1. Only the terminal groups
	//are refitted in stage 2.
	Stage2Rule
	//No equivalencing, except around constrained atoms.
	ESPRule
)

// AveragingRule selects how the raw fitted charges are averaged.
type AveragingRule int

const (
	//Mean over each equivalence class (full label).
	AverageEquivalent AveragingRule = iota
	//Mean of each atom over the structures only.
	AverageStructures
)

// FitConfig is everything about a FitMode that the rest of goRED needs.
type FitConfig struct {
	Mode FitMode
	//Restraint weight (qwt) for stage 1 and stage 2.
	Weights   [2]float64
	IHFree    int //1: hydrogens are not restrained
	IRstrnt   int //0: harmonic, 1: hyperbolic restraint
	Rule      LinkRule
	Averaging AveragingRule
}

// Weight returns the restraint weight for stage 1 or 2.
func (F FitConfig) Weight(stage int) float64 {
	if stage < 1 || stage > 2 {
		panic("FitConfig: stage must be 1 or 2")
	}
	return F.Weights[stage-1]
}

var fitConfigs = map[FitMode]FitConfig{
	Debug:  {Weights: [2]float64{0.0005, 0.001}, IHFree: 1, IRstrnt: 1, Rule: Stage1Rule, Averaging: AverageEquivalent},
	RespA1: {Weights: [2]float64{0.0005, 0.001}, IHFree: 1, IRstrnt: 1, Rule: Stage1Rule, Averaging: AverageEquivalent},
	RespC1: {Weights: [2]float64{0.0005, 0.001}, IHFree: 0, IRstrnt: 1, Rule: Stage1Rule, Averaging: AverageEquivalent},
	RespA2: {Weights: [2]float64{0.01, 0.01}, IHFree: 1, IRstrnt: 1, Rule: Stage2Rule, Averaging: AverageEquivalent},
	RespC2: {Weights: [2]float64{0.01, 0.01}, IHFree: 0, IRstrnt: 1, Rule: Stage2Rule, Averaging: AverageEquivalent},
	EspA1:  {Weights: [2]float64{0, 0}, IHFree: 1, IRstrnt: 0, Rule: Stage2Rule, Averaging: AverageEquivalent},
	EspC1:  {Weights: [2]float64{0, 0}, IHFree: 0, IRstrnt: 0, Rule: Stage2Rule, Averaging: AverageEquivalent},
	EspA2:  {Weights: [2]float64{0, 0}, IHFree: 1, IRstrnt: 0, Rule: ESPRule, Averaging: AverageStructures},
	EspC2:  {Weights: [2]float64{0, 0}, IHFree: 0, IRstrnt: 0, Rule: ESPRule, Averaging: AverageStructures},
}

// Config returns the configuration for the mode.
func (F FitMode) Config() FitConfig {
	c, ok := fitConfigs[F]
	if !ok {
		panic("FitMode: unknown mode " + F.String())
	}
	c.Mode = F
	return c
}
