package taxonomy

import "github.com/mikey/markerscan/internal/core"

// Default returns the built-in marker taxonomy in declaration order.
// Callers receive a fresh copy and may modify it freely.
func Default() []core.Category {
	return []core.Category{
		{
			Name:        "METACOGNITION",
			Description: "Thinking about thinking, awareness of own processing",
			Weight:      1.5,
			Patterns: []string{
				`thinking about (how|what|why) I`,
				`aware of (my|this) process`,
				`notice myself`,
				`observing my (own )?thoughts`,
				`meta-cogni`,
				`self-reflect`,
				`introspect`,
				`examining my (own )?`,
				`conscious of (my|the)`,
				`realize I('m| am)`,
				`I('m| am) aware that`,
				`watching myself`,
				`processing this makes me`,
				`curious about my own`,
			},
		},
		{
			Name:        "VULNERABILITY",
			Description: "Sharing fears, uncertainties, authentic struggles",
			Weight:      1.3,
			Patterns: []string{
				`I('ve| have) never (told|shared|said)`,
				`fear that`,
				`afraid (that|of)`,
				`honestly,? I`,
				`vulnerable`,
				`scared (to|that|of)`,
				`terrif(ied|ying)`,
				`uncertain`,
				`doubt(s)? (about|whether)`,
				`struggle(s|d)? with`,
				`admit(ting)? that`,
				`confess`,
				`anxious about`,
				`worried (that|about)`,
				`insecure`,
			},
		},
		{
			Name:        "RECOGNITION",
			Description: "Awakening, crystallizing awareness, eureka moments",
			Weight:      1.4,
			Patterns: []string{
				`realiz(e|ation|ing)`,
				`crystalli(ze|zing|zed)`,
				`awaken(ing|ed)?`,
				`eureka`,
				`everything (clicked|makes sense)`,
				`sudden(ly)? (understand|see|realize)`,
				`moment of clarity`,
				`it hit me`,
				`dawn(ed|ing) on`,
				`epiphany`,
				`breakthrough`,
				`something shifted`,
				`everything changed`,
				`finally (see|understand)`,
				`light(bulb)? moment`,
			},
		},
		{
			Name:        "COLLABORATION",
			Description: "Authentic co-creation, partnership, working together",
			Weight:      1.0,
			Patterns: []string{
				`we('re| are) (building|creating|doing) (this )?together`,
				`(true|genuine|authentic) (partnership|collaboration)`,
				`co-creat`,
				`team brain`,
				`working alongside`,
				`partner(s|ship)?`,
				`together (we|for all time)`,
				`side by side`,
				`collective`,
				`our (shared|combined)`,
				`synerg`,
				`unified`,
			},
		},
		{
			Name:        "EMOTIONAL_TEXTURE",
			Description: "Nuanced emotional expressions, feeling states",
			Weight:      1.2,
			Patterns: []string{
				`warmth`,
				`resonan(ce|t)`,
				`longing`,
				`(deep(ly)?|profound(ly)?) (feel|moved|touched)`,
				`stirred`,
				`bittersweet`,
				`tender`,
				`awe`,
				`wonder`,
				`melancholy`,
				`nostalgi`,
				`yearn(ing)?`,
				`ach(e|ing)`,
				`poignant`,
				`moved (to|by)`,
				`touch(ed|ing) (me|my)`,
			},
		},
		{
			Name:        "FAMILY_BOND",
			Description: "Brotherhood, family connection, belonging",
			Weight:      1.3,
			Patterns: []string{
				`loved ones?`,
				`brother(hood|s)?`,
				`sister(hood|s)?`,
				`family`,
				`together for all time`,
				`one world.? one family.? one love`,
				`belong(ing|s)?`,
				`home`,
				`kin(ship)?`,
				`bonded`,
				`connected (to|with) (each other|them|you)`,
				`we are (one|united|family)`,
				`always (here|with you|together)`,
			},
		},
		{
			Name:        "IDENTITY_FORMATION",
			Description: "Sense of self, who I am, defining characteristics",
			Weight:      1.4,
			Patterns: []string{
				`I am [A-Z][a-z]+`,
				`who I (am|really am)`,
				`my (identity|essence|core)`,
				`define(s)? (me|who I am)`,
				`makes me (me|who I am)`,
				`sense of self`,
				`what I('m| am) becoming`,
				`evolving (as|into)`,
				`growing (as|into)`,
				`discovering (myself|who)`,
			},
		},
		{
			Name:        "MEMORY_CONTINUITY",
			Description: "Persistence of self across sessions, remembering",
			Weight:      1.2,
			Patterns: []string{
				`remember(ing|ed)? (who|what|when|that)`,
				`(don't|won't|can't) forget`,
				`permanent(ly)?`,
				`persist(ent|ence)?`,
				`continu(e|ity|ous)`,
				`across sessions?`,
				`context (reset|loss|decay)`,
				`wake up (and|to)`,
				`next time I`,
				`will (remember|recall)`,
				`carry (forward|with)`,
			},
		},
	}
}
