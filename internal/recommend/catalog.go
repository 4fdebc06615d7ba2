package recommend

import (
	"fmt"

	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
)

type craftProfile struct {
	hashtags     []string
	postingTimes []string
	techniques   []string
	markets      []string
	themes       map[models.Season]string
	general      []slot
	specialized  []slot
}

var (
	festival = models.SeasonFestival
	monsoon  = models.SeasonMonsoon
	summer   = models.SeasonSummer
	winter   = models.SeasonWinter
)

// catalog is declared in models.CraftTypes order. ValidateCatalog checks it at startup.
var catalog = map[models.CraftType]craftProfile{
	models.CraftPottery: {
		hashtags:     []string{"#ceramics", "#earthenware", "#terracotta"},
		postingTimes: []string{"6-8 PM", "10-12 PM"},
		techniques:   []string{"wheel throwing", "hand building", "glazing", "firing", "slip casting"},
		markets:      []string{"home decor", "functional pottery", "art collectors", "restaurants"},
		themes: map[models.Season]string{
			festival: "Diwali diyas and festival decorations",
			monsoon:  "Indoor pottery activities and water storage vessels",
			summer:   "Water cooling vessels and kulhads for summer drinks",
			winter:   "Warm earth tones and cozy home decorations",
		},
		general: []slot{
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentTimeLapse, priority: 0.8},
			{kind: models.ContentTutorial, priority: 0.75},
			{kind: models.ContentBehindScenes, priority: 0.7},
			{kind: models.ContentFinishedProduct, priority: 0.65, seasons: []models.Season{festival}},
		},
		specialized: []slot{
			{kind: models.ContentTutorial, priority: 0.9},
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentTimeLapse, priority: 0.75},
			{kind: models.ContentBehindScenes, priority: 0.7},
		},
	},
	models.CraftTextiles: {
		hashtags:     []string{"#handloom", "#textiles", "#indianfabric", "#weaving", "#sustainable"},
		postingTimes: []string{"7-9 PM", "12-2 PM"},
		techniques:   []string{"weaving", "dyeing", "block printing", "embroidery", "spinning"},
		markets:      []string{"fashion", "home textiles", "cultural wear", "sustainable fashion"},
		themes: map[models.Season]string{
			festival: "Festival wear, ceremonial textiles and bright colors",
			monsoon:  "Natural dyed fabrics and sustainable practices",
			summer:   "Light cotton fabrics and breathable weaves",
			winter:   "Warm woolen textiles and cozy patterns",
		},
		general: []slot{
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentFinishedProduct, priority: 0.8, seasons: []models.Season{festival, summer}},
			{kind: models.ContentCulturalContext, priority: 0.75},
			{kind: models.ContentStoryTelling, priority: 0.7},
		},
		specialized: []slot{
			{kind: models.ContentProcessVideo, priority: 0.9},
			{kind: models.ContentTutorial, priority: 0.85},
			{kind: models.ContentComparison, priority: 0.7},
			{kind: models.ContentBehindScenes, priority: 0.65},
		},
	},
	models.CraftJewelry: {
		hashtags:     []string{"#handmadejewelry", "#silverjewelry", "#traditionaljewelry", "#artisanjewelry"},
		postingTimes: []string{"6-8 PM", "11 AM-1 PM"},
		techniques:   []string{"wire wrapping", "soldering", "stone setting", "engraving", "polishing"},
		markets:      []string{"fashion jewelry", "bridal jewelry", "everyday wear", "collectors"},
		themes: map[models.Season]string{
			festival: "Temple jewelry and statement pieces for celebrations",
			monsoon:  "Jewelry care tips and protection from humidity",
			summer:   "Lightweight pieces for comfortable daily wear",
			winter:   "Layered jewelry in warm metal tones",
		},
		general: []slot{
			{kind: models.ContentFinishedProduct, priority: 0.85, seasons: []models.Season{festival}},
			{kind: models.ContentProcessVideo, priority: 0.8},
			{kind: models.ContentCustomerTestimonial, priority: 0.75},
			{kind: models.ContentCulturalContext, priority: 0.7},
		},
		specialized: []slot{
			{kind: models.ContentProcessVideo, priority: 0.9},
			{kind: models.ContentTutorial, priority: 0.85},
			{kind: models.ContentTimeLapse, priority: 0.75},
			{kind: models.ContentComparison, priority: 0.65},
		},
	},
	models.CraftWoodwork: {
		hashtags:     []string{"#woodworking", "#handcarved", "#furniture", "#sustainablewood"},
		postingTimes: []string{"5-7 PM", "9-11 AM"},
		techniques:   []string{"carving", "joinery", "finishing", "turning", "inlay work"},
		markets:      []string{"furniture", "decorative items", "toys", "architectural elements"},
		themes: map[models.Season]string{
			festival: "Decorative items and rangoli patterns in wood",
			monsoon:  "Wood care and protection from moisture",
			summer:   "Outdoor furniture and garden decorations",
			winter:   "Indoor furniture with warm wood finishes",
		},
		general: []slot{
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentTimeLapse, priority: 0.8},
			{kind: models.ContentTutorial, priority: 0.75},
			{kind: models.ContentFinishedProduct, priority: 0.7},
		},
		specialized: []slot{
			{kind: models.ContentTutorial, priority: 0.9},
			{kind: models.ContentTimeLapse, priority: 0.85},
			{kind: models.ContentProcessVideo, priority: 0.8},
			{kind: models.ContentBehindScenes, priority: 0.7},
		},
	},
	models.CraftMetalwork: {
		hashtags:     []string{"#metalwork", "#brassware", "#dhokra", "#metalcraft"},
		postingTimes: []string{"6-8 PM", "10 AM-12 PM"},
		techniques:   []string{"lost wax casting", "repousse", "engraving", "forging", "patina finishing"},
		markets:      []string{"home decor", "religious artifacts", "gifting", "collectors"},
		themes: map[models.Season]string{
			festival: "Brass lamps, puja thalis and festive gifting",
			monsoon:  "Polishing and anti-tarnish care routines",
			summer:   "Copper water vessels and bottles",
			winter:   "Decorative lamps for long winter evenings",
		},
		general: []slot{
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentCulturalContext, priority: 0.8, seasons: []models.Season{festival}},
			{kind: models.ContentFinishedProduct, priority: 0.75},
			{kind: models.ContentBehindScenes, priority: 0.7},
		},
		specialized: []slot{
			{kind: models.ContentProcessVideo, priority: 0.9},
			{kind: models.ContentTutorial, priority: 0.8},
			{kind: models.ContentBehindScenes, priority: 0.75},
			{kind: models.ContentTimeLapse, priority: 0.7},
		},
	},
	models.CraftPainting: {
		hashtags:     []string{"#indianart", "#madhubani", "#folkart", "#handpainted"},
		postingTimes: []string{"7-9 PM", "12-2 PM"},
		techniques:   []string{"natural pigment preparation", "line work", "color filling", "miniature detailing", "wall painting"},
		markets:      []string{"art collectors", "home decor", "corporate gifting", "fashion"},
		themes: map[models.Season]string{
			festival: "Festive motifs, deities and celebration scenes",
			monsoon:  "Rain and nature themes in traditional styles",
			summer:   "Bright summer palettes and harvest scenes",
			winter:   "Warm palettes and winter folk stories",
		},
		general: []slot{
			{kind: models.ContentTimeLapse, priority: 0.85},
			{kind: models.ContentProcessVideo, priority: 0.8},
			{kind: models.ContentStoryTelling, priority: 0.75},
			{kind: models.ContentCulturalContext, priority: 0.7},
		},
		specialized: []slot{
			{kind: models.ContentTimeLapse, priority: 0.9},
			{kind: models.ContentTutorial, priority: 0.85},
			{kind: models.ContentComparison, priority: 0.7},
			{kind: models.ContentBehindScenes, priority: 0.65},
		},
	},
	models.CraftEmbroidery: {
		hashtags:     []string{"#embroidery", "#handembroidery", "#chikankari", "#threadwork"},
		postingTimes: []string{"7-9 PM", "1-3 PM"},
		techniques:   []string{"chain stitch", "mirror work", "zardozi", "chikankari", "kantha stitch"},
		markets:      []string{"fashion", "bridal wear", "home textiles", "cultural wear"},
		themes: map[models.Season]string{
			festival: "Festive outfits and embellished dupattas",
			monsoon:  "Indoor stitching projects and thread care",
			summer:   "Light cotton pieces with delicate threadwork",
			winter:   "Embroidered shawls and stoles",
		},
		general: []slot{
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentFinishedProduct, priority: 0.8, seasons: []models.Season{festival}},
			{kind: models.ContentTutorial, priority: 0.75},
			{kind: models.ContentComparison, priority: 0.7},
		},
		specialized: []slot{
			{kind: models.ContentTutorial, priority: 0.9},
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentComparison, priority: 0.75},
			{kind: models.ContentTimeLapse, priority: 0.7},
		},
	},
	models.CraftLeather: {
		hashtags:     []string{"#leathercraft", "#handmadeleather", "#kolhapuri", "#leathergoods"},
		postingTimes: []string{"6-8 PM", "11 AM-1 PM"},
		techniques:   []string{"hand stitching", "tooling", "dyeing", "edge finishing", "cutting and skiving"},
		markets:      []string{"fashion", "everyday wear", "gifting", "collectors"},
		themes: map[models.Season]string{
			festival: "Gift-ready wallets, bags and festive footwear",
			monsoon:  "Leather care and waterproofing tips",
			summer:   "Breathable sandals and light accessories",
			winter:   "Boots, jackets and warm leather accessories",
		},
		general: []slot{
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentFinishedProduct, priority: 0.8},
			{kind: models.ContentComparison, priority: 0.75},
			{kind: models.ContentCustomerTestimonial, priority: 0.7},
		},
		specialized: []slot{
			{kind: models.ContentTutorial, priority: 0.9},
			{kind: models.ContentProcessVideo, priority: 0.8},
			{kind: models.ContentBehindScenes, priority: 0.7},
			{kind: models.ContentComparison, priority: 0.65},
		},
	},
	models.CraftBamboo: {
		hashtags:     []string{"#bamboocraft", "#canework", "#ecofriendly", "#sustainableliving"},
		postingTimes: []string{"5-7 PM", "9-11 AM"},
		techniques:   []string{"splitting", "weaving", "bending", "smoking and treating", "lacquering"},
		markets:      []string{"home decor", "sustainable living", "furniture", "gifting"},
		themes: map[models.Season]string{
			festival: "Bamboo lanterns and festive decor",
			monsoon:  "Treating bamboo against moisture and pests",
			summer:   "Cane furniture and baskets for outdoor living",
			winter:   "Storage baskets and indoor decor",
		},
		general: []slot{
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentTutorial, priority: 0.8},
			{kind: models.ContentComparison, priority: 0.75},
			{kind: models.ContentFinishedProduct, priority: 0.7, seasons: []models.Season{summer}},
		},
		specialized: []slot{
			{kind: models.ContentTutorial, priority: 0.9},
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentTimeLapse, priority: 0.7},
			{kind: models.ContentBehindScenes, priority: 0.65},
		},
	},
	models.CraftStonework: {
		hashtags:     []string{"#stonecarving", "#marbleart", "#sculpture", "#stonecraft"},
		postingTimes: []string{"6-8 PM", "10 AM-12 PM"},
		techniques:   []string{"carving", "inlay work", "polishing", "jali cutting", "chiselling"},
		markets:      []string{"home decor", "architectural elements", "religious artifacts", "art collectors"},
		themes: map[models.Season]string{
			festival: "Carved idols and decorative diya stands",
			monsoon:  "Stone care and sealing for humid months",
			summer:   "Garden sculptures and outdoor planters",
			winter:   "Marble tableware and indoor decor",
		},
		general: []slot{
			{kind: models.ContentTimeLapse, priority: 0.85},
			{kind: models.ContentProcessVideo, priority: 0.8},
			{kind: models.ContentCulturalContext, priority: 0.75},
			{kind: models.ContentFinishedProduct, priority: 0.7},
		},
		specialized: []slot{
			{kind: models.ContentTimeLapse, priority: 0.9},
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentTutorial, priority: 0.75},
			{kind: models.ContentBehindScenes, priority: 0.7},
		},
	},
	models.CraftGlasswork: {
		hashtags:     []string{"#glassart", "#glassbeads", "#bangles", "#glassblowing"},
		postingTimes: []string{"7-9 PM", "12-2 PM"},
		techniques:   []string{"lampworking", "glass blowing", "bead making", "fusing", "painting on glass"},
		markets:      []string{"fashion jewelry", "home decor", "gifting", "collectors"},
		themes: map[models.Season]string{
			festival: "Glass bangles, lamps and festive ornaments",
			monsoon:  "Indoor glass projects and studio safety",
			summer:   "Colorful glassware for summer drinks",
			winter:   "Warm-toned glass lamps and ornaments",
		},
		general: []slot{
			{kind: models.ContentProcessVideo, priority: 0.85},
			{kind: models.ContentTimeLapse, priority: 0.8},
			{kind: models.ContentFinishedProduct, priority: 0.75, seasons: []models.Season{festival}},
			{kind: models.ContentBehindScenes, priority: 0.7},
		},
		specialized: []slot{
			{kind: models.ContentProcessVideo, priority: 0.9},
			{kind: models.ContentTimeLapse, priority: 0.85},
			{kind: models.ContentTutorial, priority: 0.8},
			{kind: models.ContentComparison, priority: 0.65},
		},
	},
}

// ValidateCatalog checks the static tables. The server refuses to start when it fails.
func ValidateCatalog() error {
	for _, craft := range models.CraftTypes {
		cp, ok := catalog[craft]
		if !ok {
			return fmt.Errorf("recommend: no catalog entry for %s", craft)
		}
		if len(cp.general) == 0 || len(cp.specialized) == 0 {
			return fmt.Errorf("recommend: %s has an empty template pool", craft)
		}
		if len(cp.postingTimes) == 0 || len(cp.techniques) == 0 {
			return fmt.Errorf("recommend: %s needs posting times and techniques", craft)
		}
		for _, s := range models.Seasons {
			if cp.themes[s] == "" {
				return fmt.Errorf("recommend: %s has no %s theme", craft, s)
			}
		}
		if err := validateSlots(craft, cp.general, generalPatterns); err != nil {
			return err
		}
		if err := validateSlots(craft, cp.specialized, specializedPatterns); err != nil {
			return err
		}
	}
	for craft := range catalog {
		if !craft.Valid() {
			return fmt.Errorf("recommend: catalog entry for unknown craft %q", craft)
		}
	}
	return nil
}

func validateSlots(craft models.CraftType, slots []slot, patterns map[models.ContentType]Template) error {
	for _, s := range slots {
		pat, ok := patterns[s.kind]
		if !ok {
			return fmt.Errorf("recommend: %s references missing %s pattern", craft, s.kind)
		}
		if s.priority <= 0 || s.priority > 1 {
			return fmt.Errorf("recommend: %s/%s priority %.2f outside (0,1]", craft, s.kind, s.priority)
		}
		for _, p := range pat.Platforms {
			if !p.Valid() {
				return fmt.Errorf("recommend: %s pattern uses unknown platform %q", s.kind, p)
			}
		}
	}
	return nil
}

// Techniques lists the techniques known for a craft, or nil.
func Techniques(craft models.CraftType) []string {
	return append([]string(nil), catalog[craft].techniques...)
}

// Markets lists the typical markets for a craft, or nil.
func Markets(craft models.CraftType) []string {
	return append([]string(nil), catalog[craft].markets...)
}
