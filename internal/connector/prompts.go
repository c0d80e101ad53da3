package connector

const enrichSystemPrompt = `You are a petroleum geoscientist annotating raw acquisition records for a prospectivity screening pipeline.
Answer with a single JSON object using exactly the keys requested. No markdown, no commentary.`

const wellPrompt = `Classify the recent production trend of this well.

Well record:
%s

Respond with JSON: {"productionTrend": "increasing|stable|declining"}`

const seismicPrompt = `Estimate the probability that this seismic survey images a hydrocarbon accumulation, and summarise the interpretation in one sentence.

Survey record:
%s

Respond with JSON: {"hydrocarbonProbability": 0-100, "interpretation": "string"}`

const satellitePrompt = `List surface hydrocarbon seepage indicators likely visible in this spectral imaging pass, and estimate a seepage probability.
Use indicator names from: oil slick, gas seep, vegetation stress, mineral alteration, bleached red beds, thermal anomaly.

Imaging pass:
%s

Respond with JSON: {"seepageIndicators": ["string"], "seepageProbability": 0-100}`

const reservoirPrompt = `Assess the exploration risk implied by this basin thermal history (maturity window, pressure, burial).

Thermal history record:
%s

Respond with JSON: {"riskLevel": "low|medium|high"}`
