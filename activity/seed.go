package activity

import "greenkit/core"

// seed carries the payout table for every role. XP drives level progress,
// points are the spendable balance; a few actions deliberately pay only one of
// the two (spending never earns XP, donation tiers earn XP but points accrue
// per dollar instead).
var seed = []Activity{
	// Member: community life
	{Role: core.RoleMember, Action: "join_community", XP: 50, Points: 100, Category: "community"},
	{Role: core.RoleMember, Action: "create_post", XP: 25, Points: 25, Category: "community"},
	{Role: core.RoleMember, Action: "comment_on_post", XP: 10, Points: 10, Category: "community"},
	{Role: core.RoleMember, Action: "like_post", XP: 5, Points: 5, Category: "community"},
	{Role: core.RoleMember, Action: "share_post", XP: 15, Points: 15, Category: "community"},

	// Member: training
	{Role: core.RoleMember, Action: "enroll_training", XP: 50, Points: 50, Category: "training"},
	{Role: core.RoleMember, Action: "complete_training_module", XP: 100, Points: 100, Category: "training"},
	{Role: core.RoleMember, Action: "complete_training", XP: 150, Points: 200, Category: "training"},
	{Role: core.RoleMember, Action: "pass_training_quiz", XP: 75, Points: 75, Category: "training"},

	// Member: events
	{Role: core.RoleMember, Action: "join_event", XP: 75, Points: 75, Category: "event"},
	{Role: core.RoleMember, Action: "attend_event", XP: 100, Points: 150, Category: "event"},
	{Role: core.RoleMember, Action: "volunteer_at_event", XP: 200, Points: 200, Category: "event"},

	// Member: environmental actions
	{Role: core.RoleMember, Action: "plant_tree", XP: 100, Points: 100, Category: "action"},
	{Role: core.RoleMember, Action: "recycle_item", XP: 20, Points: 20, Category: "action"},
	{Role: core.RoleMember, Action: "clean_beach_river", XP: 150, Points: 150, Category: "action"},
	{Role: core.RoleMember, Action: "reduce_plastic_use", XP: 50, Points: 50, Category: "action"},
	{Role: core.RoleMember, Action: "use_public_transport", XP: 30, Points: 30, Category: "action"},
	{Role: core.RoleMember, Action: "save_water", XP: 40, Points: 40, Category: "action"},
	{Role: core.RoleMember, Action: "save_energy", XP: 40, Points: 40, Category: "action"},

	// Member: achievements and streaks
	{Role: core.RoleMember, Action: "unlock_achievement", XP: 100, Points: 100, Category: "achievement"},
	{Role: core.RoleMember, Action: "complete_challenge", XP: 250, Points: 250, Category: "achievement"},
	{Role: core.RoleMember, Action: "reach_milestone", XP: 500, Points: 500, Category: "achievement"},
	{Role: core.RoleMember, Action: "invite_friend", XP: 50, Points: 50, Category: "social"},
	{Role: core.RoleMember, Action: "friend_joins", XP: 100, Points: 100, Category: "social"},
	{Role: core.RoleMember, Action: "daily_login", XP: 10, Points: 10, Category: "social"},
	{Role: core.RoleMember, Action: "weekly_streak", XP: 50, Points: 50, Category: "social"},
	{Role: core.RoleMember, Action: "monthly_streak", XP: 200, Points: 200, Category: "social"},

	// Organizer
	{Role: core.RoleOrganizer, Action: "create_community", XP: 200, Points: 300, Category: "community"},
	{Role: core.RoleOrganizer, Action: "approve_member", XP: 50, Points: 50, Category: "community"},
	{Role: core.RoleOrganizer, Action: "post_update", XP: 75, Points: 75, Category: "community"},
	{Role: core.RoleOrganizer, Action: "create_funding_project", XP: 150, Points: 200, Category: "funding"},
	{Role: core.RoleOrganizer, Action: "complete_project", XP: 300, Points: 0, Category: "funding"},
	{Role: core.RoleOrganizer, Action: "project_funded", XP: 0, Points: 500, Category: "funding"},

	// Mentor
	{Role: core.RoleMentor, Action: "create_course", XP: 250, Points: 300, Category: "teaching"},
	{Role: core.RoleMentor, Action: "publish_course", XP: 100, Points: 150, Category: "teaching"},
	{Role: core.RoleMentor, Action: "student_completion", XP: 150, Points: 100, Category: "teaching"},
	{Role: core.RoleMentor, Action: "high_rating", XP: 200, Points: 250, Category: "teaching"},
	{Role: core.RoleMentor, Action: "live_session", XP: 100, Points: 150, Category: "teaching"},

	// Donor: donation tiers earn XP; points accrue per $10 donated
	{Role: core.RoleDonor, Action: "first_donation", XP: 100, Points: 0, Category: "donation"},
	{Role: core.RoleDonor, Action: "donate_100", XP: 50, Points: 0, Category: "donation"},
	{Role: core.RoleDonor, Action: "donate_500", XP: 150, Points: 0, Category: "donation"},
	{Role: core.RoleDonor, Action: "donate_1000", XP: 300, Points: 0, Category: "donation"},
	{Role: core.RoleDonor, Action: "donate_per_10", XP: 0, Points: 1, Category: "donation"},
	{Role: core.RoleDonor, Action: "fund_project", XP: 200, Points: 300, Category: "donation"},
	{Role: core.RoleDonor, Action: "recurring_donation", XP: 0, Points: 500, Category: "donation"},

	// Admin
	{Role: core.RoleAdmin, Action: "moderate_content", XP: 50, Points: 100, Category: "moderation"},
	{Role: core.RoleAdmin, Action: "resolve_issue", XP: 100, Points: 150, Category: "moderation"},
	{Role: core.RoleAdmin, Action: "system_improvement", XP: 200, Points: 300, Category: "moderation"},
}
