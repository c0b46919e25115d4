package namematch

import "sort"

// nicknameCanonical maps an informal first name to its canonical full
// forms. A nickname can belong to several formal names (al, steve, ...),
// so the value is a set rather than a single form.
var nicknameCanonical = map[string][]string{
	"mike":    {"michael"},
	"mikey":   {"michael"},
	"mick":    {"michael"},
	"bob":     {"robert"},
	"bobby":   {"robert"},
	"rob":     {"robert"},
	"robby":   {"robert"},
	"dick":    {"richard"},
	"rick":    {"richard"},
	"rich":    {"richard"},
	"bill":    {"william"},
	"will":    {"william"},
	"billy":   {"william"},
	"jim":     {"james"},
	"jimmy":   {"james"},
	"tom":     {"thomas"},
	"tommy":   {"thomas"},
	"dave":    {"david"},
	"davey":   {"david"},
	"dan":     {"daniel"},
	"danny":   {"daniel"},
	"chris":   {"christopher"},
	"chuck":   {"charles"},
	"charlie": {"charles"},
	"ed":      {"edward"},
	"eddie":   {"edward"},
	"ted":     {"edward"},
	"teddy":   {"edward"},
	"joe":     {"joseph"},
	"joey":    {"joseph"},
	"johnny":  {"john"},
	"jon":     {"john"},
	"jack":    {"john"},
	"pat":     {"patrick"},
	"patty":   {"patrick"},
	"pete":    {"peter"},
	"steve":   {"steven", "stephen"},
	"steven":  {"stephen"},
	"al":      {"alan", "allen", "albert"},
	"alex":    {"alexander"},
	"andy":    {"andrew"},
	"drew":    {"andrew"},
	"ben":     {"benjamin"},
	"bennie":  {"benjamin"},
	"frank":   {"franklin", "francis"},
	"fred":    {"frederick"},
	"greg":    {"gregory"},
	"jeff":    {"jeffrey", "jeffery"},
	"ken":     {"kenneth"},
	"kenny":   {"kenneth"},
	"larry":   {"lawrence"},
	"matt":    {"matthew"},
	"nate":    {"nathan", "nathaniel"},
	"nick":    {"nicholas"},
	"phil":    {"philip", "phillip"},
	"ray":     {"raymond"},
	"ron":     {"ronald"},
	"ronny":   {"ronald"},
	"sam":     {"samuel"},
	"shawn":   {"sean"},
	"tim":     {"timothy"},
	"timmy":   {"timothy"},
	"tony":    {"anthony"},
	"vince":   {"vincent"},
}

// canonicalNicknames is the reverse index: canonical form → informal
// forms whose canonical set contains it.
var canonicalNicknames = func() map[string][]string {
	rev := make(map[string][]string)
	for nick, fulls := range nicknameCanonical {
		for _, full := range fulls {
			rev[full] = append(rev[full], nick)
		}
	}
	for _, nicks := range rev {
		sort.Strings(nicks)
	}
	return rev
}()

// Expand returns the equivalence set for a lowercase first-name token:
// the token itself, its canonical forms if it is a listed nickname, and
// every nickname whose canonical form equals it. Never applied to last
// names.
func Expand(first string) []string {
	seen := map[string]bool{first: true}
	out := []string{first}
	for _, full := range nicknameCanonical[first] {
		if !seen[full] {
			seen[full] = true
			out = append(out, full)
		}
	}
	for _, nick := range canonicalNicknames[first] {
		if !seen[nick] {
			seen[nick] = true
			out = append(out, nick)
		}
	}
	return out
}
