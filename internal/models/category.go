package models

// FAQCategory is the closed set of FAQ categories.
type FAQCategory string

const (
	FAQCategoryAcademics     FAQCategory = "academics"
	FAQCategoryAdmissions    FAQCategory = "admissions"
	FAQCategoryFacilities    FAQCategory = "facilities"
	FAQCategoryEvents        FAQCategory = "events"
	FAQCategoryGeneral       FAQCategory = "general"
	FAQCategorySports        FAQCategory = "sports"
	FAQCategoryLibrary       FAQCategory = "library"
	FAQCategoryHostel        FAQCategory = "hostel"
	FAQCategoryPlacement     FAQCategory = "placement"
	FAQCategoryClubs         FAQCategory = "clubs"
	FAQCategoryAccommodation FAQCategory = "accommodation"
	FAQCategoryTechnical     FAQCategory = "technical"
)

// FAQCategories lists every accepted FAQ category in declaration order.
var FAQCategories = []FAQCategory{
	FAQCategoryAcademics,
	FAQCategoryAdmissions,
	FAQCategoryFacilities,
	FAQCategoryEvents,
	FAQCategoryGeneral,
	FAQCategorySports,
	FAQCategoryLibrary,
	FAQCategoryHostel,
	FAQCategoryPlacement,
	FAQCategoryClubs,
	FAQCategoryAccommodation,
	FAQCategoryTechnical,
}

// Valid reports whether c is a known FAQ category.
func (c FAQCategory) Valid() bool {
	for _, candidate := range FAQCategories {
		if c == candidate {
			return true
		}
	}
	return false
}

// AnnouncementCategory is the closed set of announcement categories. It
// overlaps with FAQCategory by name but is validated separately; the
// singular/plural pairs (event/events, holiday/holidays) are both accepted
// because existing rows use either spelling.
type AnnouncementCategory string

const (
	AnnouncementCategoryAcademic   AnnouncementCategory = "academic"
	AnnouncementCategoryEvent      AnnouncementCategory = "event"
	AnnouncementCategoryExam       AnnouncementCategory = "exam"
	AnnouncementCategoryHoliday    AnnouncementCategory = "holiday"
	AnnouncementCategoryGeneral    AnnouncementCategory = "general"
	AnnouncementCategorySports     AnnouncementCategory = "sports"
	AnnouncementCategoryCultural   AnnouncementCategory = "cultural"
	AnnouncementCategoryPlacement  AnnouncementCategory = "placement"
	AnnouncementCategoryEmergency  AnnouncementCategory = "emergency"
	AnnouncementCategoryFacilities AnnouncementCategory = "facilities"
	AnnouncementCategoryEvents     AnnouncementCategory = "events"
	AnnouncementCategoryHolidays   AnnouncementCategory = "holidays"
)

// AnnouncementCategories lists every accepted announcement category.
var AnnouncementCategories = []AnnouncementCategory{
	AnnouncementCategoryAcademic,
	AnnouncementCategoryEvent,
	AnnouncementCategoryExam,
	AnnouncementCategoryHoliday,
	AnnouncementCategoryGeneral,
	AnnouncementCategorySports,
	AnnouncementCategoryCultural,
	AnnouncementCategoryPlacement,
	AnnouncementCategoryEmergency,
	AnnouncementCategoryFacilities,
	AnnouncementCategoryEvents,
	AnnouncementCategoryHolidays,
}

// Valid reports whether c is a known announcement category.
func (c AnnouncementCategory) Valid() bool {
	for _, candidate := range AnnouncementCategories {
		if c == candidate {
			return true
		}
	}
	return false
}

// Priority ranks announcements.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
	PriorityNormal Priority = "normal"
)
