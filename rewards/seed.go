package rewards

import "greenkit/core"

var seed = []Reward{
	// Organizer
	{ID: "org-1", Role: core.RoleOrganizer, Title: "Community Builder Badge", Description: "Recognition badge for creating your first community", PointsCost: 500, Icon: "workspace_premium", Category: "Badge"},
	{ID: "org-2", Role: core.RoleOrganizer, Title: "Event Planning Kit", Description: "Digital toolkit with templates for organizing community events", PointsCost: 1000, Icon: "event_note", Category: "Tool"},
	{ID: "org-3", Role: core.RoleOrganizer, Title: "Leadership Certificate", Description: "Official certificate recognizing your community leadership", PointsCost: 2000, Icon: "card_membership", Category: "Certificate"},
	{ID: "org-4", Role: core.RoleOrganizer, Title: "Premium Community Features", Description: "Unlock advanced analytics and management tools", PointsCost: 3000, Icon: "auto_awesome", Category: "Feature"},
	{ID: "org-5", Role: core.RoleOrganizer, Title: "Networking Event Pass", Description: "Free pass to exclusive organizer networking events", PointsCost: 1500, Icon: "groups", Category: "Event"},

	// Mentor
	{ID: "men-1", Role: core.RoleMentor, Title: "Educator Badge", Description: "Recognition for creating your first training course", PointsCost: 500, Icon: "school", Category: "Badge"},
	{ID: "men-2", Role: core.RoleMentor, Title: "Course Creation Toolkit", Description: "Advanced tools for creating engaging course content", PointsCost: 1200, Icon: "video_library", Category: "Tool"},
	{ID: "men-3", Role: core.RoleMentor, Title: "Master Educator Certificate", Description: "Official certification as a master environmental educator", PointsCost: 2500, Icon: "verified", Category: "Certificate"},
	{ID: "men-4", Role: core.RoleMentor, Title: "Live Session Credits", Description: "10 hours of premium video conferencing for live sessions", PointsCost: 1800, Icon: "video_call", Category: "Service"},
	{ID: "men-5", Role: core.RoleMentor, Title: "Mentorship Excellence Award", Description: "Prestigious award for outstanding mentorship", PointsCost: 3500, Icon: "emoji_events", Category: "Award"},

	// Donor
	{ID: "don-1", Role: core.RoleDonor, Title: "Philanthropist Badge", Description: "Recognition for your first donation", PointsCost: 500, Icon: "volunteer_activism", Category: "Badge"},
	{ID: "don-2", Role: core.RoleDonor, Title: "Impact Report Premium", Description: "Detailed quarterly impact reports with photos and updates", PointsCost: 1000, Icon: "analytics", Category: "Report"},
	{ID: "don-3", Role: core.RoleDonor, Title: "Donor Recognition Plaque", Description: "Physical plaque recognizing your contributions", PointsCost: 2000, Icon: "military_tech", Category: "Physical"},
	{ID: "don-4", Role: core.RoleDonor, Title: "Project Naming Rights", Description: "Name a funded project in your honor", PointsCost: 5000, Icon: "label", Category: "Recognition"},
	{ID: "don-5", Role: core.RoleDonor, Title: "VIP Donor Status", Description: "Exclusive access to project sites and events", PointsCost: 3000, Icon: "stars", Category: "Status"},

	// Member
	{ID: "mem-1", Role: core.RoleMember, Title: "Eco Warrior T-Shirt", Description: "Exclusive Just Go Green branded t-shirt", PointsCost: 500, Icon: "checkroom", Category: "Merchandise"},
	{ID: "mem-2", Role: core.RoleMember, Title: "Reusable Water Bottle", Description: "Premium stainless steel water bottle", PointsCost: 800, Icon: "water_drop", Category: "Merchandise"},
	{ID: "mem-3", Role: core.RoleMember, Title: "Tree Planting Certificate", Description: "Plant a tree in your name", PointsCost: 1000, Icon: "park", Category: "Impact"},
}
