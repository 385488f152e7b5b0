package levels

import "greenkit/core"

// defaultTable carries the Just Go Green progression ladders. Ladders differ
// per role in length of range and naming; members climb the classic green
// journey, the other roles have their own tiers.
var defaultTable = Table{
	core.RoleMember: {
		{Level: 1, Name: "Rookie", MinXP: 0, MaxXP: 499, Icon: "eco", Color: "#81C784", Benefits: []string{"Join communities", "Earn points"}},
		{Level: 2, Name: "Helper", MinXP: 500, MaxXP: 1499, Icon: "local_florist", Color: "#66BB6A", Benefits: []string{"Create posts", "Join events"}},
		{Level: 3, Name: "Warrior", MinXP: 1500, MaxXP: 3499, Icon: "nature_people", Color: "#4CAF50", Benefits: []string{"Exclusive rewards", "Priority support"}},
		{Level: 4, Name: "Guardian", MinXP: 3500, MaxXP: 6999, Icon: "emoji_events", Color: "#43A047", Benefits: []string{"Leadership opportunities", "Mentor access"}},
		{Level: 5, Name: "Champion", MinXP: 7000, MaxXP: -1, Icon: "stars", Color: "#2E7D32", Benefits: []string{"All features", "VIP status"}},
	},
	core.RoleOrganizer: {
		{Level: 1, Name: "Community Starter", MinXP: 0, MaxXP: 199, Icon: "group_add", Color: "#00d084", Benefits: []string{"Create 1 community", "Basic tools"}},
		{Level: 2, Name: "Community Builder", MinXP: 200, MaxXP: 499, Icon: "groups", Color: "#00b870", Benefits: []string{"Create 3 communities", "Analytics"}},
		{Level: 3, Name: "Community Leader", MinXP: 500, MaxXP: 999, Icon: "supervisor_account", Color: "#00a060", Benefits: []string{"Unlimited communities", "Advanced tools"}},
		{Level: 4, Name: "Community Expert", MinXP: 1000, MaxXP: 1999, Icon: "workspace_premium", Color: "#008850", Benefits: []string{"Funding access", "Priority support"}},
		{Level: 5, Name: "Community Master", MinXP: 2000, MaxXP: -1, Icon: "military_tech", Color: "#007040", Benefits: []string{"All features", "Mentorship program"}},
	},
	core.RoleMentor: {
		{Level: 1, Name: "Instructor", MinXP: 0, MaxXP: 249, Icon: "school", Color: "#667eea", Benefits: []string{"Create 1 course", "Basic content"}},
		{Level: 2, Name: "Educator", MinXP: 250, MaxXP: 599, Icon: "menu_book", Color: "#764ba2", Benefits: []string{"Create 3 courses", "Video hosting"}},
		{Level: 3, Name: "Expert Trainer", MinXP: 600, MaxXP: 1199, Icon: "psychology", Color: "#8b5cf6", Benefits: []string{"Unlimited courses", "Live sessions"}},
		{Level: 4, Name: "Master Educator", MinXP: 1200, MaxXP: 2499, Icon: "verified", Color: "#a78bfa", Benefits: []string{"Certification program", "Premium tools"}},
		{Level: 5, Name: "Education Pioneer", MinXP: 2500, MaxXP: -1, Icon: "auto_awesome", Color: "#c4b5fd", Benefits: []string{"All features", "Revenue sharing"}},
	},
	core.RoleDonor: {
		{Level: 1, Name: "Supporter", MinXP: 0, MaxXP: 299, Icon: "favorite", Color: "#f093fb", Benefits: []string{"Donate to projects", "Basic reports"}},
		{Level: 2, Name: "Contributor", MinXP: 300, MaxXP: 699, Icon: "volunteer_activism", Color: "#f5576c", Benefits: []string{"Impact dashboard", "Quarterly reports"}},
		{Level: 3, Name: "Benefactor", MinXP: 700, MaxXP: 1499, Icon: "card_giftcard", Color: "#ff6b9d", Benefits: []string{"Project naming", "Site visits"}},
		{Level: 4, Name: "Philanthropist", MinXP: 1500, MaxXP: 2999, Icon: "diamond", Color: "#ff8fab", Benefits: []string{"VIP events", "Direct impact"}},
		{Level: 5, Name: "Visionary", MinXP: 3000, MaxXP: -1, Icon: "stars", Color: "#ffa3b9", Benefits: []string{"All features", "Legacy projects"}},
	},
	core.RoleAdmin: {
		{Level: 1, Name: "Admin", MinXP: 0, MaxXP: 499, Icon: "admin_panel_settings", Color: "#ff5722", Benefits: []string{"Full access"}},
		{Level: 2, Name: "Super Admin", MinXP: 500, MaxXP: 999, Icon: "security", Color: "#f44336", Benefits: []string{"All features"}},
		{Level: 3, Name: "System Master", MinXP: 1000, MaxXP: 1999, Icon: "shield", Color: "#e53935", Benefits: []string{"Ultimate control"}},
		{Level: 4, Name: "Platform Guardian", MinXP: 2000, MaxXP: 4999, Icon: "verified_user", Color: "#d32f2f", Benefits: []string{"Everything"}},
		{Level: 5, Name: "Architect", MinXP: 5000, MaxXP: -1, Icon: "engineering", Color: "#c62828", Benefits: []string{"God mode"}},
	},
}
