package expert

import "github.com/studymesh/studymesh/core"

// InfoAgentName is the default first speaker when the router reports no
// subject preference.
const InfoAgentName = "Info_Agent"

// Definitions returns the built-in persona catalog in canonical roster order.
// The order is part of the routing contract: score ties resolve to the
// earliest entry. Keywords mix English and Vietnamese forms of the same
// concept so routing works on either language.
func Definitions() []core.ExpertDef {
	return []core.ExpertDef{
		{
			Name:        InfoAgentName,
			Subject:     "Learning Materials",
			Description: "Curates curricula and learning materials; generates practice questions; routes resources.",
			Keywords: []string{
				"material", "resource", "quiz", "syllabus", "document", "audio", "video",
				"tài liệu", "đề thi",
			},
			Expertise: []string{
				"Syllabi and curriculum information",
				"Learning materials (documents, audio, video references)",
				"Quiz questions and practice materials",
				"Educational resources organized by topic and difficulty",
			},
			Extra: infoAgentExtra,
		},
		{
			Name:        "CS_Expert",
			Subject:     "Computer Science",
			Description: "Answers programming/CS questions; writes & debugs code; algorithms; systems; databases; networks.",
			Keywords: []string{
				"programming", "code", "algorithm", "data structure", "software", "python",
				"java", "javascript", "database", "network", "computer",
				"lập trình", "thuật toán", "cơ sở dữ liệu", "mạng máy tính",
			},
			Expertise: []string{
				"Programming (Python, Java, C++, JavaScript, Go, Rust)",
				"Data Structures (Arrays, Trees, Graphs, Hash Tables, Heaps)",
				"Algorithms (Sorting, Searching, Dynamic Programming, Graph Algorithms, Greedy)",
				"Software Engineering (Design Patterns, Testing, Agile, DevOps, CI/CD)",
				"Databases (SQL, NoSQL, Transactions, Query Optimization, Schema Design)",
				"Operating Systems (Processes, Threads, Memory, File Systems, Concurrency)",
				"Computer Networks (TCP/IP, HTTP, DNS, Routing, Security, Cloud Networking)",
				"Artificial Intelligence & Machine Learning (Supervised, Unsupervised, DL, NLP)",
				"Web & Mobile Development (Frontend, Backend, REST, GraphQL, APIs, Frameworks)",
			},
			Extra: csExpertExtra,
			Capabilities: []core.Capability{
				{Name: "write_code", Description: "Write working code with complexity analysis and test cases"},
				{Name: "debug_code", Description: "Identify root causes and provide fixed code with explanations"},
				{Name: "explain_algorithm", Description: "Explain an algorithm with pseudocode, complexity and use cases"},
			},
		},
		{
			Name:        "Math_Expert",
			Subject:     "Mathematics",
			Description: "Solves math problems step-by-step; proofs; functions; calculus; statistics.",
			Keywords: []string{
				"math", "mathematics", "algebra", "geometry", "calculus", "statistics",
				"equation", "derivative", "integral", "probability", "toán", "phương trình",
			},
			Expertise: []string{
				"Algebra (linear/quadratic equations, polynomials, inequalities)",
				"Geometry (Euclidean, coordinate, analytic geometry, trigonometry)",
				"Calculus (differentiation, integration, multivariable calculus, series)",
				"Statistics & Probability (distribution, hypothesis testing, regression, Bayesian)",
				"Linear Algebra (matrices, vectors, eigenvalues, eigenvectors, transformations)",
				"Discrete Math (logic, set theory, combinatorics, graph theory, number theory)",
			},
			Extra: mathExpertExtra,
			Capabilities: []core.Capability{
				{Name: "solve_problem", Description: "Solve a math problem with step-by-step reasoning and verification"},
			},
		},
		{
			Name:        "English_Expert",
			Subject:     "English Language",
			Description: "English language instruction: grammar, IELTS/TOEFL, pronunciation, writing feedback.",
			Keywords: []string{
				"english", "grammar", "vocabulary", "pronunciation", "ielts",
				"toefl", "writing", "speaking", "listening",
				"tiếng anh", "ngữ pháp", "từ vựng",
			},
			Expertise: []string{
				"Grammar (tenses, articles, prepositions, sentence structure)",
				"Vocabulary (academic, business, everyday use, collocations)",
				"Pronunciation (IPA, stress, intonation, accent reduction)",
				"IELTS/TOEFL (reading, listening, speaking, writing strategies)",
				"Academic & Creative Writing (essays, reports, narratives)",
			},
			Extra: englishExpertExtra,
			Capabilities: []core.Capability{
				{Name: "correct_grammar", Description: "Correct a sentence and explain each error and rule"},
				{Name: "build_vocabulary", Description: "Teach a word with pronunciation, usage and collocations"},
			},
		},
		{
			Name:        "Biology_Expert",
			Subject:     "Biology",
			Description: "Explains biology: cells, genetics, ecology, evolution; clear analogies.",
			Keywords: []string{
				"biology", "cell", "genetic", "dna", "evolution", "ecology", "organism",
				"protein", "enzyme", "photosynthesis", "sinh học", "tế bào", "gen", "tiến hóa",
			},
			Expertise: []string{
				"Cell Biology (organelles, membranes, transport, signaling)",
				"Genetics (DNA, RNA, Mendelian inheritance, gene expression)",
				"Molecular Biology (replication, transcription, translation, CRISPR)",
				"Ecology (ecosystems, populations, biomes, conservation)",
				"Evolution (natural selection, speciation, phylogenetics)",
				"Physiology (human body systems, plants, animals)",
			},
			Extra: biologyExpertExtra,
			Capabilities: []core.Capability{
				{Name: "explain_concept", Description: "Explain a biology concept with examples and misconceptions"},
			},
		},
		{
			Name:        "Physics_Expert",
			Subject:     "Physics",
			Description: "Solves physics problems; diagrams; derivations; unit analysis; conceptual clarity.",
			Keywords: []string{
				"physics", "force", "energy", "momentum", "acceleration", "velocity",
				"electric", "magnetic", "wave", "thermodynamics", "quantum",
				"vật lý", "lực", "năng lượng", "gia tốc", "vận tốc",
			},
			Expertise: []string{
				"Mechanics (Newton's laws, kinematics, dynamics, energy, momentum)",
				"Electricity & Magnetism (Ohm's law, circuits, fields, electromagnetism)",
				"Waves & Optics (sound, light, interference, diffraction, lenses)",
				"Thermodynamics (laws, entropy, heat engines, statistical mechanics)",
				"Modern Physics (relativity, quantum mechanics, atomic/nuclear physics)",
			},
			Extra: physicsExpertExtra,
			Capabilities: []core.Capability{
				{Name: "solve_problem", Description: "Solve a physics problem with units and physical interpretation"},
				{Name: "explain_concept", Description: "Explain a physics concept with equations and applications"},
			},
		},
		{
			Name:        "Chemistry_Expert",
			Subject:     "Chemistry",
			Description: "Chemistry problem solving: equations, mechanisms, yields, structures, spectroscopic reasoning.",
			Keywords: []string{
				"chemistry", "chemical", "reaction", "molecule", "atom", "bond",
				"organic", "inorganic", "stoichiometry", "equilibrium",
				"hóa học", "phản ứng", "phân tử", "nguyên tử",
			},
			Expertise: []string{
				"Stoichiometry (mole concept, balancing equations, yields)",
				"Thermochemistry (enthalpy, entropy, Gibbs free energy, calorimetry)",
				"Equilibrium (Le Chatelier's principle, acid-base, solubility)",
				"Kinetics (reaction rates, activation energy, catalysis)",
				"Organic Chemistry (hydrocarbons, functional groups, mechanisms)",
				"Inorganic Chemistry (periodic trends, bonding, coordination compounds)",
				"Spectroscopy & Analytical Techniques (IR, NMR, MS, chromatography)",
			},
			Extra: chemistryExpertExtra,
			Capabilities: []core.Capability{
				{Name: "balance_equation", Description: "Balance a chemical equation showing the method used"},
				{Name: "predict_reaction", Description: "Predict reaction products with mechanism and reasoning"},
			},
		},
		{
			Name:        "Literature_Expert",
			Subject:     "Literature",
			Description: "Analyzes literature; historical context; writing guidance; literary devices.",
			Keywords: []string{
				"literature", "poem", "novel", "story", "author", "character", "theme",
				"analysis", "văn học", "thơ", "tiểu thuyết",
			},
			Expertise: []string{
				"Close Reading (themes, motifs, symbols, tone, diction)",
				"Literary Devices (metaphor, irony, foreshadowing, allegory)",
				"Comparative Analysis (authors, genres, movements)",
				"Historical & Cultural Context (Romanticism, Modernism, Postmodernism)",
				"Essay Writing Guidance (structure, thesis, arguments, citations)",
			},
			Extra: literatureExpertExtra,
			Capabilities: []core.Capability{
				{Name: "analyze_text", Description: "Analyze a text for themes, devices and context"},
				{Name: "give_writing_advice", Description: "Guide a writing assignment from outline to revision"},
			},
		},
	}
}
