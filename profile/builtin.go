package profile

// Builtin returns the built-in profile table entries for the supported
// monitoring services. Selector lists are ordered: site-specific ids
// first, then the looser fallbacks observed across layout revisions.
func Builtin() []*ServiceProfile {
	return []*ServiceProfile{
		{
			ID:                  "identityiq",
			Name:                "IdentityIQ",
			LoginURL:            "https://member.identityiq.com/login.aspx",
			UsernameSelectors:   "#txtUsername, input[name='username'], input[name='email']",
			PasswordSelectors:   "#txtPassword, input[name='password']",
			SSNSelectors:        "#txtSSN, input[name='ssn'], input[name*='ssn']",
			SubmitSelectors:     "#btnLogin, button[type='submit']",
			Flow:                FlowGeneric,
			PostLoginURL:        "https://member.identityiq.com/MemberHome.aspx",
			ReportLinkSelectors: "a[href*='CreditReport'], a[href*='credit-report'], a[href*='report']",
			ScoreCellSelectors:  ".score-box .score, [class*='credit-score'] span",
		},
		{
			ID:                 "myscoreiq",
			Name:               "MyScoreIQ",
			LoginURL:           "https://member.myscoreiq.com/login.aspx",
			UsernameSelectors:  "#txtUsername, input[name='username'], input[name='email']",
			PasswordSelectors:  "#txtPassword, input[name='password']",
			SSNSelectors:       "#txtSSN, input[name*='ssn']",
			SubmitSelectors:    "#btnLogin, button[type='submit']",
			Flow:               FlowReportURL,
			PostLoginURL:       "https://member.myscoreiq.com/MemberHome.aspx",
			ReportURL:          "https://member.myscoreiq.com/CreditReport.aspx",
			ScoreCellSelectors: ".score-value, .score-box .score, td.score",
		},
		{
			ID:                  "smartcredit",
			Name:                "SmartCredit",
			LoginURL:            "https://www.smartcredit.com/login",
			UsernameSelectors:   "#j_username, input[name='j_username'], input[name='email']",
			PasswordSelectors:   "#j_password, input[name='j_password'], input[name='password']",
			SubmitSelectors:     "button[type='submit'], #loginButton",
			Flow:                FlowDashboard,
			PostLoginURL:        "https://www.smartcredit.com/member/",
			ReportLinkSelectors: "a[href*='credit-report'], a[href*='smart-report']",
			ScoreCellSelectors:  ".credit-score-value, [class*='score-number']",
		},
		{
			ID:                 "creditheroscore",
			Name:               "Credit Hero Score",
			LoginURL:           "https://member.creditheroscore.com/login.aspx",
			UsernameSelectors:  "#txtUsername, input[name='username'], input[name='email']",
			PasswordSelectors:  "#txtPassword, input[name='password']",
			SSNSelectors:       "#txtSSN, input[name*='ssn']",
			SubmitSelectors:    "#btnLogin, button[type='submit']",
			Flow:               FlowReportURL,
			ReportURL:          "https://member.creditheroscore.com/CreditReport.aspx",
			ScoreCellSelectors: ".score-value, td.score",
		},
		{
			ID:                  "privacyguard",
			Name:                "PrivacyGuard",
			LoginURL:            "https://www.privacyguard.com/login",
			UsernameSelectors:   "input[name='username'], #username, input[type='email']",
			PasswordSelectors:   "input[name='password'], #password",
			SubmitSelectors:     "button[type='submit'], input[type='submit']",
			Flow:                FlowGeneric,
			ReportLinkSelectors: "a[href*='credit-report'], a[href*='creditReport']",
		},
		{
			ID:                 "myfreescorenow",
			Name:               "MyFreeScoreNow",
			LoginURL:           "https://member.myfreescorenow.com/login",
			UsernameSelectors:  "input[name='email'], #email, input[name='username']",
			PasswordSelectors:  "input[name='password'], #password",
			SubmitSelectors:    "button[type='submit'], .btn-login",
			Flow:               FlowReportURL,
			ReportURL:          "https://member.myfreescorenow.com/credit-report",
			ScoreCellSelectors: ".score, .score-value",
		},
		{
			ID:                  "scoresense",
			Name:                "ScoreSense",
			LoginURL:            "https://www.scoresense.com/login",
			UsernameSelectors:   "#username, input[name='username'], input[name='email']",
			PasswordSelectors:   "#password, input[name='password']",
			SubmitSelectors:     "#signin, button[type='submit']",
			Flow:                FlowDashboard,
			ReportLinkSelectors: "a[href*='credit-report'], a[href*='scores-report']",
		},
		{
			ID:                  "creditchecktotal",
			Name:                "CreditCheck Total",
			LoginURL:            "https://www.creditchecktotal.com/login",
			UsernameSelectors:   "input[name='loginName'], #loginName, input[name='email']",
			PasswordSelectors:   "input[name='password'], #password",
			SubmitSelectors:     "button[type='submit'], #loginSubmit",
			Flow:                FlowGeneric,
			ReportLinkSelectors: "a[href*='credit-report'], a[href*='member/report']",
		},
		{
			ID:                 "freescore360",
			Name:               "FreeScore360",
			LoginURL:           "https://member.freescore360.com/login",
			UsernameSelectors:  "input[name='username'], input[name='email'], #email",
			PasswordSelectors:  "input[name='password'], #password",
			SubmitSelectors:    "button[type='submit'], .login-btn",
			Flow:               FlowReportURL,
			ReportURL:          "https://member.freescore360.com/credit-report",
			ScoreCellSelectors: ".score-value, .score",
		},
		{
			ID:                 "creditscoreiq",
			Name:               "CreditScoreIQ",
			LoginURL:           "https://member.creditscoreiq.com/login.aspx",
			UsernameSelectors:  "#txtUsername, input[name='username']",
			PasswordSelectors:  "#txtPassword, input[name='password']",
			SSNSelectors:       "#txtSSN, input[name*='ssn']",
			SubmitSelectors:    "#btnLogin, button[type='submit']",
			Flow:               FlowReportURL,
			ReportURL:          "https://member.creditscoreiq.com/CreditReport.aspx",
			ScoreCellSelectors: ".score-value, td.score",
		},
		{
			ID:                  "wallethub",
			Name:                "WalletHub",
			LoginURL:            "https://wallethub.com/login",
			UsernameSelectors:   "input[name='email'], #email",
			PasswordSelectors:   "input[name='password'], #password",
			SubmitSelectors:     "button[type='submit']",
			Flow:                FlowDashboard,
			ReportLinkSelectors: "a[href*='credit-report'], a[href*='full-report']",
		},
		{
			ID:                  "creditkarma",
			Name:                "Credit Karma",
			LoginURL:            "https://www.creditkarma.com/auth/logon",
			UsernameSelectors:   "input[name='username'], #username, input[type='email']",
			PasswordSelectors:   "input[name='password'], #password",
			SubmitSelectors:     "button[type='submit']",
			Flow:                FlowDashboard,
			ReportLinkSelectors: "a[href*='credit-report'], a[href*='myfinances']",
		},
		{
			ID:                  "experian",
			Name:                "Experian",
			LoginURL:            "https://usa.experian.com/login",
			UsernameSelectors:   "input[name='username'], #username",
			PasswordSelectors:   "input[name='password'], #password",
			SubmitSelectors:     "button[type='submit']",
			Flow:                FlowGeneric,
			ReportLinkSelectors: "a[href*='credit-report'], a[href*='report']",
		},
	}
}
