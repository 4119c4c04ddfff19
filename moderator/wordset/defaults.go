package wordset

// Built-in disallowed vocabulary for the default deployment (an Arabic-language
// community). Deployments can replace this list entirely with a JSON word-set
// file.
var defaultTerms = []string{
	"عير", "عيري", "زب", "زبي", "كس", "كسي", "كسكوس", "طيز", "طيزي", "طيزج", "كسج", "كسك",
	"انيج", "انيك", "نيجه", "منيوج", "منيوجه", "نجت", "اتنايج", "نتنايج", "انيجج", "انيجها",
	"صدرج", "ديوس", "ديسج", "ديوسج", "اجب", "جبيت", "ناجج", "نيجتي", "انبعصت", "بعصك",
	"بعصتي", "مبعبص", "مبعوص", "ابعصه", "احطه بيج", "احطه بيك", "يوجعج مو", "عيوره", "عيورة",
}
