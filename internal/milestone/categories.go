package milestone

// Box-score categories.
const (
	QuadrupleDoubles  = "quadruple_double"
	TripleDoubles     = "triple_doubles"
	DoubleDoubles     = "double_doubles"
	NearTripleDoubles = "near_triple_doubles"
	NearDoubleDoubles = "near_double_doubles"
	FiveByFive        = "five_by_five"
	AllAroundGames    = "all_around_game"

	FiftyPointGames      = "fifty_point_games"
	FortyPointGames      = "forty_point_games"
	ThirtyPointGames     = "thirty_point_games"
	TwentyFivePointGames = "twenty_five_point_games"
	TwentyPointGames     = "twenty_point_games"

	TwentyReboundGames  = "twenty_rebound_games"
	FifteenReboundGames = "fifteen_rebound_games"
	TenReboundGames     = "ten_rebound_games"

	TwentyAssistGames  = "twenty_assist_games"
	FifteenAssistGames = "fifteen_assist_games"
	TenAssistGames     = "ten_assist_games"

	TenBlockGames  = "ten_block_games"
	FiveBlockGames = "five_block_games"
	TenStealGames  = "ten_steal_games"
	FiveStealGames = "five_steal_games"

	TenThreeGames   = "ten_three_games"
	SevenThreeGames = "seven_three_games"
	FiveThreeGames  = "five_three_games"

	DefensiveMonster   = "defensive_monster"
	PerfectFromThree   = "perfect_from_three"
	PerfectFGGames     = "perfect_fg_games"
	HotShootingGames   = "hot_shooting_games"
	PerfectFTGames     = "perfect_ft_games"
	EfficientScoring   = "efficient_scoring"
	ThirtyTenGames     = "thirty_ten_games"
	TwentyTenGames     = "twenty_ten_games"
	TwentyTenFiveGames = "twenty_ten_five_games"
	PointsAssistsDD    = "points_assists_dd"
	ZeroTurnoverGames  = "zero_turnover_games"
)

// Play-by-play categories.
const (
	FifteenPointTeamRun    = "fifteen_point_team_run"
	TwelvePointTeamRun     = "twelve_point_team_run"
	TenPointTeamRun        = "ten_point_team_run"
	TenPointPlayerStreak   = "ten_point_player_streak"
	EightPointPlayerStreak = "eight_point_player_streak"
	TwentyPointComeback    = "twenty_point_comeback"
	FifteenPointComeback   = "fifteen_point_comeback"
	TenPointComeback       = "ten_point_comeback"
	ClutchFifteenPoints    = "clutch_fifteen_points"
	ClutchTenPoints        = "clutch_ten_points"
	ClutchGoAheadShot      = "clutch_go_ahead_shot"
	GameWinningShot        = "game_winning_shot"
)
