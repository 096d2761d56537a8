package rotation

import "math"

// CalculateRolePoints converts a player's accumulated per-role time into the 3-point
// fairness score used to guide substitution decisions. Pure and read-only: calling it
// twice without intervening mutation yields identical results.
//
// One point is awarded per period in goal; the remainder of the budget is split between
// defender and attacker proportionally to time played, rounded to the nearest half point.
// Because the two halves are rounded independently, any rounding drift is handed to the
// bucket with the larger share (the attacker bucket on exact ties).
func CalculateRolePoints(p *Player) RolePoints {
	points := RolePoints{Goalie: float64(p.Stats.PeriodsAsGoalie)}

	remaining := TotalRolePoints - points.Goalie
	if remaining <= 0 {
		return points
	}

	totalOutfield := p.Stats.TimeAsDefenderSeconds + p.Stats.TimeAsAttackerSeconds
	if totalOutfield == 0 {
		return points
	}

	defenderRatio := float64(p.Stats.TimeAsDefenderSeconds) / float64(totalOutfield)
	attackerRatio := float64(p.Stats.TimeAsAttackerSeconds) / float64(totalOutfield)

	points.Defender = roundToNearestHalf(defenderRatio * remaining)
	points.Attacker = roundToNearestHalf(attackerRatio * remaining)

	difference := remaining - (points.Defender + points.Attacker)
	if difference != 0 {
		if defenderRatio > attackerRatio {
			points.Defender += difference
		} else {
			points.Attacker += difference
		}
	}

	return points
}

func roundToNearestHalf(x float64) float64 {
	return math.Round(x*2) / 2
}
