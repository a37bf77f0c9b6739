package domain

import "strings"

// Rank is an index into the fixed rank ladder used by the ratings site,
// ordered from lowest to highest. RankUnknown is the zero value and covers
// any rank text we fail to recognize.
type Rank int

const (
	RankUnknown Rank = iota
	RankRecruit
	RankPrivate
	RankGefreiter
	RankCorporal
	RankMasterCorporal
	RankSergeant
	RankStaffSergeant
	RankMasterSergeant
	RankFirstSergeant
	RankSergeantMajor
	RankWarrantOfficer1
	RankWarrantOfficer2
	RankWarrantOfficer3
	RankWarrantOfficer4
	RankWarrantOfficer5
	RankThirdLieutenant
	RankSecondLieutenant
	RankFirstLieutenant
	RankCaptain
	RankMajor
	RankLieutenantColonel
	RankColonel
	RankBrigadier
	RankMajorGeneral
	RankLieutenantGeneral
	RankGeneral
	RankMarshal
	RankFieldMarshal
	RankCommander
	RankGeneralissimo
	RankLegend
)

var rankNames = [...]string{
	RankUnknown:           "Unknown",
	RankRecruit:           "Recruit",
	RankPrivate:           "Private",
	RankGefreiter:         "Gefreiter",
	RankCorporal:          "Corporal",
	RankMasterCorporal:    "Master Corporal",
	RankSergeant:          "Sergeant",
	RankStaffSergeant:     "Staff Sergeant",
	RankMasterSergeant:    "Master Sergeant",
	RankFirstSergeant:     "First Sergeant",
	RankSergeantMajor:     "Sergeant-Major",
	RankWarrantOfficer1:   "Warrant Officer 1",
	RankWarrantOfficer2:   "Warrant Officer 2",
	RankWarrantOfficer3:   "Warrant Officer 3",
	RankWarrantOfficer4:   "Warrant Officer 4",
	RankWarrantOfficer5:   "Warrant Officer 5",
	RankThirdLieutenant:   "Third Lieutenant",
	RankSecondLieutenant:  "Second Lieutenant",
	RankFirstLieutenant:   "First Lieutenant",
	RankCaptain:           "Captain",
	RankMajor:             "Major",
	RankLieutenantColonel: "Lieutenant Colonel",
	RankColonel:           "Colonel",
	RankBrigadier:         "Brigadier",
	RankMajorGeneral:      "Major General",
	RankLieutenantGeneral: "Lieutenant General",
	RankGeneral:           "General",
	RankMarshal:           "Marshal",
	RankFieldMarshal:      "Field Marshal",
	RankCommander:         "Commander",
	RankGeneralissimo:     "Generalissimo",
	RankLegend:            "Legend",
}

func (r Rank) String() string {
	if r < 0 || int(r) >= len(rankNames) {
		return rankNames[RankUnknown]
	}

	return rankNames[r]
}

// RankFromName matches case-insensitively and ignores surrounding whitespace.
// Text that matches no known rank resolves to RankUnknown.
func RankFromName(name string) Rank {
	name = strings.TrimSpace(name)

	for i, rankName := range rankNames {
		if Rank(i) == RankUnknown {
			continue
		}
		if strings.EqualFold(name, rankName) {
			return Rank(i)
		}
	}

	return RankUnknown
}
